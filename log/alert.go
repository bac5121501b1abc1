package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

const alertChannelSize = 10

// telegram caps a message at 4096 characters
const alertChunkSize = 3000

var alertApi = "https://api.telegram.org"

type alerter struct {
	token  string
	chatId int64
	msgs   chan string
	client *http.Client
}

var (
	alertMu sync.RWMutex
	alert   *alerter
)

// InitAlert starts the bot sender. Without a token Alertf only logs.
func InitAlert(token string, chatId int64) {
	if token == "" {
		return
	}
	a := &alerter{
		token:  token,
		chatId: chatId,
		msgs:   make(chan string, alertChannelSize),
		client: &http.Client{Timeout: 5 * time.Second},
	}
	go a.loop()
	alertMu.Lock()
	alert = a
	alertMu.Unlock()
	Infof("alert bot enabled, chatId: %d", chatId)
}

// Alertf logs at error level and forwards the message to the alert chat, for situations that
// need an operator.
func Alertf(format string, a ...interface{}) {
	logger.Errorf(format, a...)

	alertMu.RLock()
	al := alert
	alertMu.RUnlock()
	if al == nil {
		return
	}
	hostname, _ := os.Hostname()
	msg := "HostName:" + hostname + "\n\r" + fmt.Sprintf(format, a...)
	select {
	case al.msgs <- msg:
	default:
		logger.Errorf("alert channel overflow! msg:%v", msg)
	}
}

func (a *alerter) loop() {
	for m := range a.msgs {
		for i := 0; i < len(m); i += alertChunkSize {
			end := i + alertChunkSize
			if end > len(m) {
				end = len(m)
			}
			if err := a.send(m[i:end]); err != nil {
				logger.Errorf("send alert error: %v", err)
			}
		}
	}
}

func (a *alerter) send(msg string) error {
	data, err := json.Marshal(map[string]interface{}{
		"chat_id": a.chatId,
		"text":    msg,
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, alertApi+"/bot"+a.token+"/sendMessage", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram api status %d: %s", resp.StatusCode, body)
	}
	Debugf("alert api resp: %s", body)
	return nil
}
