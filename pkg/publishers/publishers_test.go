package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "publishers.yaml")
	content := `
publishers:
  - id: webhook
    type: HTTP
    http:
      url: " https://hooks.example.com/swaps "
      headers:
        X-Token: abc
        " ": ignored
  - id: queue
    type: sqs
    enabled: false
    sqs:
      uri: https://sqs.eu-west-1.amazonaws.com/1/swaps
      region: eu-west-1
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:eu-west-1:1:swaps
      region: eu-west-1
      credentials:
        access_key_id: AKIA
        secret_access_key: secret
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("expected 3 publishers, got %d", len(reg.All()))
	}
	if len(reg.Enabled()) != 2 {
		t.Fatalf("expected 2 enabled publishers, got %d", len(reg.Enabled()))
	}

	hook, ok := reg.ByID("webhook")
	if !ok {
		t.Fatalf("webhook publisher missing")
	}
	if hook.Type != TypeHTTP || hook.HTTP.URL != "https://hooks.example.com/swaps" {
		t.Fatalf("unexpected webhook config: %#v", hook.HTTP)
	}
	if hook.HTTP.Method != httpDefaultMethod || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("defaults not applied: %#v", hook.HTTP)
	}
	if len(hook.HTTP.Headers) != 1 {
		t.Fatalf("expected blank header to be dropped: %v", hook.HTTP.Headers)
	}

	topic, _ := reg.ByID("topic")
	if topic.SNS.Credentials == nil || topic.SNS.Credentials.AccessKeyID != "AKIA" {
		t.Fatalf("sns credentials not loaded: %#v", topic.SNS)
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := map[string]string{
		"missing sqs region": `
publishers:
  - id: q
    type: sqs
    sqs:
      uri: https://example.com/q
`,
		"missing pubsub topic": `
publishers:
  - id: p
    type: gcp_pubsub
    gcp_pubsub:
      project_id: proj
`,
		"duplicate id": `
publishers:
  - id: dup
    type: http
    http:
      url: https://a.example
  - id: dup
    type: http
    http:
      url: https://b.example
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "publishers.yaml")
			if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
				t.Fatalf("write publishers file: %v", err)
			}
			if _, err := LoadRegistry(file); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
