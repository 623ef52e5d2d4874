package gpu_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/stretchr/testify/assert"
)

func TestLogErrorsDrainsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	rec := gputest.NewRecorder()
	rec.PendingErrors = []uint32{0x0500, 0x0502}

	assert.Equal(t, 2, gpu.LogErrors(rec, "upload"))
	assert.Zero(t, gpu.LogErrors(rec, "upload"), "errors are drained")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "opengl error"))
	assert.Contains(t, out, "op=upload")
	assert.Contains(t, out, "code=1282")
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "element", gpu.TargetElementArrayBuffer.String())
	assert.Equal(t, "dynamic", gpu.UsageDynamic.String())
	assert.Equal(t, "fragment", gpu.StageFragment.String())
	assert.Equal(t, "depth_stencil", gpu.FormatDepthStencil.String())
	assert.Equal(t, "unknown", gpu.ShaderStage(99).String())
}
