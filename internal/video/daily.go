package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// roomTTL keeps candidate rooms joinable for the whole interview window.
const roomTTL = 2 * time.Hour

// RoomProvisioner is what the interview flow needs from the video service.
type RoomProvisioner interface {
	CreateRoom(ctx context.Context) (string, error)
}

// Client provisions rooms from a Daily-compatible REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type roomProperties struct {
	Exp             int64  `json:"exp"`
	EnableChat      bool   `json:"enable_chat"`
	EnableRecording string `json:"enable_recording"`
}

type createRoomRequest struct {
	Properties roomProperties `json:"properties"`
}

type createRoomResponse struct {
	URL string `json:"url"`
}

// CreateRoom provisions a time-boxed room with chat enabled and recording
// disabled, and returns the joinable URL.
func (c *Client) CreateRoom(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("video API key not configured")
	}

	body, err := json.Marshal(createRoomRequest{
		Properties: roomProperties{
			Exp:             time.Now().Add(roomTTL).Unix(),
			EnableChat:      true,
			EnableRecording: "false",
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rooms", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("video room request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("video room request failed with status %d: %s", resp.StatusCode, string(payload))
	}

	var room createRoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return "", fmt.Errorf("failed to decode room response: %w", err)
	}
	if room.URL == "" {
		return "", errors.New("video room response missing url")
	}

	return room.URL, nil
}
