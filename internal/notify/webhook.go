package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/conf"

	"github.com/google/wire"
	jsoniter "github.com/json-iterator/go"
)

var ProviderSet = wire.NewSet(NewWebhook)

type Webhook struct {
	WebhookURL    string
	SigningSecret string
	Prefix        string
	Client        *http.Client
}

func NewWebhook(c *conf.Notify) Notifier {
	if c == nil || !c.Enabled || strings.TrimSpace(c.GetWebhookUrl()) == "" {
		return Noop{}
	}
	return &Webhook{
		WebhookURL:    strings.TrimSpace(c.GetWebhookUrl()),
		SigningSecret: strings.TrimSpace(c.GetSigningSecret()),
		Prefix:        strings.TrimSpace(c.GetPrefix()),
		Client:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Send(ctx context.Context, msg *Message) error {
	if w.WebhookURL == "" || msg == nil {
		return nil
	}

	content := msg.Content
	if content == "" {
		content = msg.Title
	}
	title := msg.Title
	if title == "" {
		title = "通知"
	}
	if p := strings.TrimSpace(w.Prefix); p != "" {
		title = p + " " + title
	}

	payload := map[string]any{
		"msg_type": "interactive",
		"card": map[string]any{
			"config":   map[string]bool{"wide_screen_mode": true},
			"header":   map[string]any{"title": map[string]string{"tag": "plain_text", "content": title}, "template": "blue"},
			"elements": []map[string]any{{"tag": "div", "text": map[string]string{"tag": "lark_md", "content": content}}},
		},
	}
	if w.SigningSecret != "" {
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		payload["timestamp"] = ts
		payload["sign"] = w.sign(ts)
	}

	body, _ := jsoniter.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, w.WebhookURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook: status %d", resp.StatusCode)
	}
	var r struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	_ = jsoniter.NewDecoder(resp.Body).Decode(&r)
	if r.Code != 0 {
		return fmt.Errorf("webhook: code=%d msg=%s", r.Code, r.Msg)
	}
	return nil
}

// sign 加签：HMAC-SHA256(key=timestamp+\n+secret, message="")
func (w *Webhook) sign(ts string) string {
	key := ts + "\n" + w.SigningSecret
	h := hmac.New(sha256.New, []byte(key))
	h.Write(nil)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// BuildSnapshotMessage 构建排行榜快照完成的 Markdown 消息
func BuildSnapshotMessage(day, elapsed string, lines []string) *Message {
	body := []string{
		fmt.Sprintf("**日期**：%s", day),
		fmt.Sprintf("**耗时**：%s", elapsed),
	}
	body = append(body, lines...)
	return &Message{Title: "排行榜快照完成", Content: strings.Join(body, "\n")}
}
