package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/dentaview/internal/loader"
)

// LoadModels prepares files and, after the configured load delay, replaces
// the model set. Preparation errors are returned immediately and leave the
// state untouched. A file that fails to decode yields a *loader.DecodeError
// and rejects the whole batch. A later call supersedes an earlier one still in its delay;
// the superseded batch is released without ever being applied.
func (c *Controller) LoadModels(files []loader.File) error {
	batch, err := c.ldr.Prepare(files)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.release(batch.Models, "closed")
		return ErrClosed
	}

	if c.pending != nil {
		c.log.Debug("superseding pending upload", zap.Int("models", len(c.pending.Models)))
		c.release(c.pending.Models, "superseded")
	}
	c.pending = batch
	c.st.ModelsLoading = true
	c.schedule(&c.load, c.cfg.LoadDelay, c.applyLoadLocked)

	st, subs := c.publishLocked()
	c.mu.Unlock()
	notify(st, subs)
	return nil
}

func (c *Controller) applyLoadLocked() bool {
	batch := c.pending
	c.pending = nil
	if batch == nil {
		c.st.ModelsLoading = false
		return true
	}

	old := c.st.Models
	c.st.Models = batch.Models
	c.st.UpperJawRestPosition = batch.RestPosition
	c.st.SingleMeshRestPosition = c.ldr.SingleMeshRest()
	c.st.UpperJawOffset = 0
	c.hideSegmentsLocked()
	c.st.ModelsLoading = false

	c.release(old, "replaced")
	c.log.Info("models loaded",
		zap.Int("count", len(batch.Models)),
		zap.Float32("rest", batch.RestPosition))
	return true
}
