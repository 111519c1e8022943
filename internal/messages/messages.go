// Package messages builds the slash-command response payloads on the
// slack library's message types, see
// https://api.slack.com/docs/formatting.
package messages

import "github.com/slack-go/slack"

// Response visibility and attachment colors understood by Slack. A
// message without a response_type is ephemeral, visible only to the
// invoking user.
const (
	ResponseInChannel = "in_channel"

	ColorGood    = "good"
	ColorWarning = "warning"
)

// Ephemeral builds a private message for the invoking user.
func Ephemeral(text string) *slack.Msg {
	return &slack.Msg{Text: text}
}

// InChannel builds a broadcast message visible to the whole channel.
func InChannel(text string) *slack.Msg {
	return &slack.Msg{ResponseType: ResponseInChannel, Text: text}
}

// AddAttachment appends one attachment to m. The image is rendered
// full size, or as a thumbnail when thumbnail is true. Empty color
// and image are left out of the payload.
func AddAttachment(m *slack.Msg, text, color, image string, thumbnail bool) {
	a := slack.Attachment{Text: text, Color: color}
	if image != "" {
		if thumbnail {
			a.ThumbURL = image
		} else {
			a.ImageURL = image
		}
	}
	m.Attachments = append(m.Attachments, a)
}
