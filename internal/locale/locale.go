// Package locale holds the viewer's user-facing copy.
package locale

import (
	"fmt"
	"strings"
)

// Lang is a UI language code.
type Lang string

const (
	Vietnamese Lang = "vi"
	English    Lang = "en"
)

// Default is the product's language.
const Default = Vietnamese

// Parse returns the language for code, falling back to Default.
func Parse(code string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(code))) {
	case Vietnamese:
		return Vietnamese, true
	case English:
		return English, true
	}
	return Default, false
}

// Key identifies one string.
type Key string

const (
	AppTitle Key = "app.title"

	Upload        Key = "header.upload"
	ShowLabels    Key = "header.labels.show"
	HideLabels    Key = "header.labels.hide"
	ShowSegments  Key = "header.segments.show"
	HideSegments  Key = "header.segments.hide"
	ShowAxes      Key = "header.axes.show"
	HideAxes      Key = "header.axes.hide"
	CrossSection  Key = "header.cross_section"
	Wireframe     Key = "header.wireframe"
	Xray          Key = "header.xray"
	PresetFront   Key = "header.preset.front"
	PresetSide    Key = "header.preset.side"
	PresetTop     Key = "header.preset.top"
	PresetOcc     Key = "header.preset.occlusal"
	StatusReveal  Key = "header.status.reveal"
	StatusLabels  Key = "header.status.labels"
	StatusAxes    Key = "header.status.axes"
	LoadingModels Key = "overlay.loading"

	PanelTitle        Key = "panel.title"
	JawOffsetTitle    Key = "panel.jaw_offset.title"
	JawOffsetHint     Key = "panel.jaw_offset.hint"
	LightingTitle     Key = "panel.lighting.title"
	LightingHint      Key = "panel.lighting.hint"
	CrossSectionTitle Key = "panel.cross_section.title"
	ChooseAxis        Key = "panel.cross_section.choose_axis"
	AxisButton        Key = "panel.cross_section.axis" // %s axis letter
	CrossSectionHint  Key = "panel.cross_section.hint" // %s axis letter
	ModelInfoTitle    Key = "panel.info.title"
	TotalModels       Key = "panel.info.total"
	GroupedFiles      Key = "panel.info.grouped"
	SingleFiles       Key = "panel.info.single"
	TotalTeeth        Key = "panel.info.teeth"
	QuickActions      Key = "panel.actions.title"
	ResetAll          Key = "panel.actions.reset"
	ResetCamera       Key = "panel.actions.reset_camera"

	ToothCaption Key = "scene.tooth" // %s tooth label
	JawUpper     Key = "scene.jaw.upper"
	JawLower     Key = "scene.jaw.lower"

	NoValidFiles Key = "error.no_valid_files"
)

var catalogs = map[Lang]map[Key]string{
	Vietnamese: {
		AppTitle:      "Môi Trường 3D",
		Upload:        "Tải Lên Tệp",
		ShowLabels:    "Hiện Nhãn",
		HideLabels:    "Ẩn Nhãn",
		ShowSegments:  "Hiện Phân Đoạn",
		HideSegments:  "Ẩn Phân Đoạn",
		ShowAxes:      "Hiện Trục",
		HideAxes:      "Ẩn Trục",
		CrossSection:  "Mặt Cắt Ngang",
		Wireframe:     "Khung Dây",
		Xray:          "Tia X",
		PresetFront:   "Mặt Trước",
		PresetSide:    "Mặt Bên",
		PresetTop:     "Mặt Trên",
		PresetOcc:     "Khớp Cắn",
		StatusReveal:  "Đang xử lý...",
		StatusLabels:  "Đang tải nhãn...",
		StatusAxes:    "Đang ước tính trục...",
		LoadingModels: "Đang tải mô hình 3D...",

		PanelTitle:        "Bảng Điều Khiển",
		JawOffsetTitle:    "Vị Trí Hàm Trên",
		JawOffsetHint:     "Điều chỉnh khoảng cách dọc giữa hàm trên và hàm dưới",
		LightingTitle:     "Điều Khiển Ánh Sáng",
		LightingHint:      "Điều chỉnh cường độ ánh sáng tổng thể để có tầm nhìn tốt hơn",
		CrossSectionTitle: "Mặt Cắt Ngang",
		ChooseAxis:        "Chọn Trục:",
		AxisButton:        "%s Trục",
		CrossSectionHint:  "Định vị mặt phẳng cắt ngang dọc theo trục %s",
		ModelInfoTitle:    "Thông Tin Mô Hình",
		TotalModels:       "Tổng Số Mô Hình:",
		GroupedFiles:      "Tệp OBJ:",
		SingleFiles:       "Tệp STL:",
		TotalTeeth:        "Tổng Số Răng:",
		QuickActions:      "Thao Tác Nhanh",
		ResetAll:          "Đặt Lại Tất Cả Cài Đặt",
		ResetCamera:       "Đặt Lại Góc Nhìn Camera",

		ToothCaption: "Răng %s",
		JawUpper:     "Hàm Trên",
		JawLower:     "Hàm Dưới",

		NoValidFiles: "Vui lòng tải lên ít nhất một tệp .obj hoặc .stl.",
	},
	English: {
		AppTitle:      "3D Workspace",
		Upload:        "Upload Files",
		ShowLabels:    "Show Labels",
		HideLabels:    "Hide Labels",
		ShowSegments:  "Show Segments",
		HideSegments:  "Hide Segments",
		ShowAxes:      "Show Axes",
		HideAxes:      "Hide Axes",
		CrossSection:  "Cross Section",
		Wireframe:     "Wireframe",
		Xray:          "X-Ray",
		PresetFront:   "Front",
		PresetSide:    "Side",
		PresetTop:     "Top",
		PresetOcc:     "Occlusal",
		StatusReveal:  "Processing...",
		StatusLabels:  "Loading labels...",
		StatusAxes:    "Estimating axes...",
		LoadingModels: "Loading 3D models...",

		PanelTitle:        "Control Panel",
		JawOffsetTitle:    "Upper Jaw Position",
		JawOffsetHint:     "Adjust the vertical gap between the upper and lower jaw",
		LightingTitle:     "Lighting",
		LightingHint:      "Adjust overall light intensity for better visibility",
		CrossSectionTitle: "Cross Section",
		ChooseAxis:        "Axis:",
		AxisButton:        "%s Axis",
		CrossSectionHint:  "Position the cutting plane along the %s axis",
		ModelInfoTitle:    "Model Information",
		TotalModels:       "Total Models:",
		GroupedFiles:      "OBJ Files:",
		SingleFiles:       "STL Files:",
		TotalTeeth:        "Total Teeth:",
		QuickActions:      "Quick Actions",
		ResetAll:          "Reset All Settings",
		ResetCamera:       "Reset Camera View",

		ToothCaption: "Tooth %s",
		JawUpper:     "Upper Jaw",
		JawLower:     "Lower Jaw",

		NoValidFiles: "Please upload at least one .obj or .stl file.",
	},
}

// T returns the string for key in lang. Missing entries fall back to
// English, then to the key itself.
func T(lang Lang, key Key) string {
	if s, ok := catalogs[lang][key]; ok {
		return s
	}
	if s, ok := catalogs[English][key]; ok {
		return s
	}
	return string(key)
}

// Tf formats the string for key with args.
func Tf(lang Lang, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}
