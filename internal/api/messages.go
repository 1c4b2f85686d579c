package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/slinkp/outreach/internal/model"
)

type listMessagesResponse struct {
	Messages []model.Message `json:"messages"`
}

// ListMessages returns every recruiter message known to the server.
func (c *Client) ListMessages(ctx context.Context) ([]model.Message, error) {
	var resp listMessagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/messages", "load messages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SaveReply stores edited reply text on a message without sending it.
func (c *Client) SaveReply(ctx context.Context, messageID int64, text string) (*model.Message, error) {
	var msg model.Message
	path := fmt.Sprintf("/api/messages/%d/reply", messageID)
	body := map[string]string{"reply_message": text}
	if err := c.do(ctx, http.MethodPut, path, "save reply", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GenerateReply starts a background reply-generation task for the message.
func (c *Client) GenerateReply(ctx context.Context, messageID int64) (*TaskRef, error) {
	var ref TaskRef
	path := fmt.Sprintf("/api/messages/%d/reply", messageID)
	if err := c.do(ctx, http.MethodPost, path, "generate reply", nil, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// ArchiveMessage archives a message without replying.
func (c *Client) ArchiveMessage(ctx context.Context, messageID int64) error {
	path := fmt.Sprintf("/api/messages/%d/archive", messageID)
	return c.do(ctx, http.MethodPost, path, "archive message", nil, nil)
}

// SendAndArchive sends the saved reply and archives the message. The send
// happens in a background task; poll the returned task id.
func (c *Client) SendAndArchive(ctx context.Context, messageID int64) (*TaskRef, error) {
	var ref TaskRef
	path := fmt.Sprintf("/api/messages/%d/send_and_archive", messageID)
	if err := c.do(ctx, http.MethodPost, path, "send reply", nil, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}
