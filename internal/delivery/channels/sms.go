package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SendTestSms đẩy nội dung SMS đã render sang webhook của SMS gateway.
func SendTestSms(ctx context.Context, webhookURL, phoneNumber, content string) error {
	if webhookURL == "" {
		return fmt.Errorf("SMS webhook chưa được cấu hình")
	}

	payload := map[string]interface{}{
		"to":        phoneNumber,
		"content":   content,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS webhook trả về status %d", resp.StatusCode)
	}

	return nil
}
