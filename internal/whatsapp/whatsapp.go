// Package whatsapp sends operational notifications through the WhatsApp
// Business Cloud API. A nil provider disables messaging without touching
// the callers.
package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider defines the interface for WhatsApp API providers
type Provider interface {
	SendMessage(phone, message string) error
	SendTemplateMessage(phone, templateName string, params []string) error
	GetName() string
}

// Config holds configuration for the Cloud API provider
type Config struct {
	APIKey        string
	PhoneNumberID string
	BaseURL       string
}

// CloudAPIService implements WhatsApp via the Meta Cloud API, which most
// BSPs proxy unchanged
type CloudAPIService struct {
	config *Config
	client *http.Client
}

// NewCloudAPIService creates a Cloud API provider.
// apiKey is the access token from Meta Business Suite or a BSP.
func NewCloudAPIService(apiKey, phoneNumberID string) *CloudAPIService {
	return &CloudAPIService{
		config: &Config{
			APIKey:        apiKey,
			PhoneNumberID: phoneNumberID,
			BaseURL:       "https://graph.facebook.com/v18.0",
		},
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL allows overriding the API base URL (for BSP proxies)
func (s *CloudAPIService) SetBaseURL(url string) {
	s.config.BaseURL = url
}

// SendMessage sends a plain text message. Only delivered inside the 24
// hour customer service window; use templates outside it.
func (s *CloudAPIService) SendMessage(phone, message string) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                formatPhoneNumber(phone),
		"type":              "text",
		"text": map[string]string{
			"preview_url": "false",
			"body":        message,
		},
	}
	return s.sendRequest(payload)
}

// SendTemplateMessage sends a pre-approved template message
func (s *CloudAPIService) SendTemplateMessage(phone, templateName string, params []string) error {
	components := []map[string]interface{}{}
	if len(params) > 0 {
		bodyParams := make([]map[string]string, len(params))
		for i, param := range params {
			bodyParams[i] = map[string]string{"type": "text", "text": param}
		}
		components = append(components, map[string]interface{}{
			"type":       "body",
			"parameters": bodyParams,
		})
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                formatPhoneNumber(phone),
		"type":              "template",
		"template": map[string]interface{}{
			"name": templateName,
			"language": map[string]string{
				"code": "id",
			},
			"components": components,
		},
	}
	return s.sendRequest(payload)
}

func (s *CloudAPIService) sendRequest(payload map[string]interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.config.BaseURL, s.config.PhoneNumberID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errResp map[string]interface{}
		if json.Unmarshal(body, &errResp) == nil {
			if errObj, ok := errResp["error"].(map[string]interface{}); ok {
				if msg, ok := errObj["message"].(string); ok {
					return fmt.Errorf("WhatsApp API error: %s", msg)
				}
			}
		}
		return fmt.Errorf("WhatsApp API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// GetName returns the provider name
func (s *CloudAPIService) GetName() string {
	return "Meta Cloud API"
}

// formatPhoneNumber normalizes to international format without the plus.
// Local numbers starting with 0 get the Indonesian country code.
func formatPhoneNumber(phone string) string {
	cleaned := ""
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			cleaned += string(c)
		}
	}
	if len(cleaned) > 1 && cleaned[0] == '0' {
		return "62" + cleaned[1:]
	}
	return cleaned
}

// NewProvider creates a provider from config, or nil when messaging is
// not configured
func NewProvider(apiKey, phoneNumberID string) Provider {
	if apiKey == "" || phoneNumberID == "" {
		return nil
	}
	return NewCloudAPIService(apiKey, phoneNumberID)
}
