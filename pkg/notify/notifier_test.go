package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) (*Notifier, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	logger, _ := logtest.NewNullLogger()
	return &Notifier{Out: &buf, Logger: logger}, &buf
}

func TestGuard_SuccessIsSilent(t *testing.T) {
	n, buf := newTestNotifier(t)

	code := n.Guard(func() int { return 0 })
	assert.Equal(t, 0, code)
	assert.Empty(t, buf.String())
}

func TestGuard_FailureWarnsOnce(t *testing.T) {
	n, buf := newTestNotifier(t)

	code := n.Guard(func() int { return 101 })
	assert.Equal(t, 101, code)
	assert.Equal(t, "⚠️  run failed (exit status 101)\n", buf.String())

	// 再次通知不会重复输出
	n.Notify(3)
	assert.Equal(t, 1, strings.Count(buf.String(), "run failed"))
}

func TestGuard_PanicBecomesFailure(t *testing.T) {
	n, buf := newTestNotifier(t)

	var code int
	assert.NotPanics(t, func() {
		code = n.Guard(func() int { panic("boom") })
	})
	assert.Equal(t, 1, code)
	assert.Equal(t, "⚠️  run failed (exit status 1)\n", buf.String())
}

func TestGuard_RunsFnOnce(t *testing.T) {
	n, _ := newTestNotifier(t)

	calls := 0
	n.Guard(func() int { calls++; return 0 })
	assert.Equal(t, 1, calls)
}

func TestNotify_FirstCallWins(t *testing.T) {
	n, buf := newTestNotifier(t)

	n.Notify(0)
	n.Notify(2)
	assert.Empty(t, buf.String())
}

func TestNew_DefaultLogger(t *testing.T) {
	n := New(nil)
	logger, ok := n.Logger.(*logrus.Logger)
	require.True(t, ok)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestGuard_PanicLoggedWithCurrentLogger(t *testing.T) {
	n, _ := newTestNotifier(t)
	logger, hook := logtest.NewNullLogger()

	n.Guard(func() int {
		// 加载配置后替换为配置好的日志器
		n.Logger = logger
		panic("boom")
	})
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "执行异常中止", hook.LastEntry().Message)
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}
