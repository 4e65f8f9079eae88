package notify

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type botServer struct {
	mu    sync.Mutex
	texts []string
	fail  bool
}

func (b *botServer) handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"ledger","username":"ledger_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseForm()
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		b.texts = append(b.texts, r.Form.Get("text"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		http.NotFound(w, r)
	}
}

func (b *botServer) sent() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.texts...)
}

func newTelegram(t *testing.T, bot *botServer) *Telegram {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(bot.handler))
	t.Cleanup(srv.Close)
	tg, err := NewTelegramWithEndpoint("token", srv.URL+"/bot%s/%s", 42, slog.Default())
	require.NoError(t, err)
	return tg
}

func TestTelegram_Send(t *testing.T) {
	bot := &botServer{}
	tg := newTelegram(t, bot)

	require.NoError(t, tg.Send(context.Background(), "Deposit of 100 USDT awaits review"))
	assert.Equal(t, []string{"Deposit of 100 USDT awaits review"}, bot.sent())

	bot.mu.Lock()
	bot.fail = true
	bot.mu.Unlock()
	err := tg.Send(context.Background(), "again")
	assert.ErrorContains(t, err, "telegram: send failed")
}

func TestTelegram_SendSplitsLongMessages(t *testing.T) {
	bot := &botServer{}
	tg := newTelegram(t, bot)

	require.NoError(t, tg.Send(context.Background(), strings.Repeat("x", maxMessageLength+10)))
	sent := bot.sent()
	require.Len(t, sent, 2)
	assert.Len(t, sent[1], 10)
}

func TestNewTelegram_RequiresConfig(t *testing.T) {
	_, err := NewTelegram("", 1, slog.Default())
	assert.Error(t, err)
	_, err = NewTelegram("token", 0, slog.Default())
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"abc"}, split("abc", 5))
	assert.Equal(t, []string{"ab", "cd", "e"}, split("abcde", 2))
	assert.Equal(t, []string{"żó", "ł"}, split("żół", 2))
}
