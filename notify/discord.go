// Package notify delivers notification decisions to a Discord webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sedama0217-sketch/PMserch/models"
)

// webhookPayload is the Discord webhook request body.
type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string      `json:"title"`
	URL         string      `json:"url,omitempty"`
	Description string      `json:"description"`
	Timestamp   string      `json:"timestamp"`
	Fields      []field     `json:"fields"`
	Image       *embedImage `json:"image,omitempty"`
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedImage struct {
	URL string `json:"url"`
}

// DiscordNotifier posts one webhook message per decision. A mention prefix
// (e.g. a role ping) is sent as the message content when configured.
type DiscordNotifier struct {
	webhookURL  string
	mentionRole string
	pageURL     string
	client      *resty.Client
}

// NewDiscordNotifier creates a notifier for the given webhook. pageURL is
// the fallback embed link for items that were extracted without one.
func NewDiscordNotifier(webhookURL, mentionRole, pageURL string) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL:  webhookURL,
		mentionRole: mentionRole,
		pageURL:     pageURL,
		client:      resty.New().SetTimeout(15 * time.Second),
	}
}

// Send delivers one decision. A non-2xx response from Discord is a delivery
// error carrying the status code and response body.
func (n *DiscordNotifier) Send(ctx context.Context, d models.Decision, detectedAt time.Time) error {
	payload := webhookPayload{
		Content: n.mentionRole,
		Embeds:  []embed{n.buildEmbed(d, detectedAt)},
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("discord: post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("discord: webhook status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (n *DiscordNotifier) buildEmbed(d models.Decision, detectedAt time.Time) embed {
	title := d.Item.Name
	if title == "" {
		title = "New item"
	}
	url := d.Item.URL
	if url == "" {
		url = n.pageURL
	}

	e := embed{
		Title:       title,
		URL:         url,
		Description: d.Reason,
		Timestamp:   detectedAt.UTC().Format(time.RFC3339),
		Fields: []field{
			{Name: "検出日時", Value: detectedAt.UTC().Format("2006-01-02 15:04:05 UTC"), Inline: true},
			{Name: "状態", Value: d.Reason, Inline: true},
		},
	}
	if d.Item.Image != "" {
		e.Image = &embedImage{URL: d.Item.Image}
	}
	return e
}
