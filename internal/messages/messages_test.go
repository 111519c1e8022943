package messages

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEphemeralOmitsResponseType(t *testing.T) {
	body, err := json.Marshal(Ephemeral("hi"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(body)
	if strings.Contains(got, "response_type") {
		t.Errorf("ephemeral payload should omit response_type: %s", got)
	}
	if !strings.Contains(got, `"text":"hi"`) {
		t.Errorf("payload missing text: %s", got)
	}
}

func TestInChannelSetsResponseType(t *testing.T) {
	body, err := json.Marshal(InChannel("hello channel"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `"response_type":"in_channel"`) {
		t.Errorf("broadcast payload missing response_type: %s", body)
	}
}

func TestAddAttachmentImageXorThumb(t *testing.T) {
	m := InChannel("x")
	AddAttachment(m, "full", ColorGood, "https://img/a.png", false)
	AddAttachment(m, "thumb", ColorWarning, "https://img/b.png", true)
	AddAttachment(m, "bare", "", "", false)

	if m.Attachments[0].ImageURL == "" || m.Attachments[0].ThumbURL != "" {
		t.Errorf("full-size attachment = %+v", m.Attachments[0])
	}
	if m.Attachments[1].ThumbURL == "" || m.Attachments[1].ImageURL != "" {
		t.Errorf("thumbnail attachment = %+v", m.Attachments[1])
	}

	body, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	got := string(body)
	if strings.Contains(got, `"color":""`) || strings.Contains(got, `"image_url":""`) {
		t.Errorf("empty fields should be omitted: %s", got)
	}
}

func TestAttachmentsOmittedWhenEmpty(t *testing.T) {
	body, err := json.Marshal(Ephemeral("no cards"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(body), "attachments") {
		t.Errorf("payload should omit empty attachments: %s", body)
	}
}
