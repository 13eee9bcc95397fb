package opusmt

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLoaderChecksModelAvailability(t *testing.T) {
	client := New("")
	var checkArgs []string
	client.WithRunner(func(_ context.Context, stdin string, args ...string) (string, error) {
		checkArgs = args
		if stdin != "" {
			t.Errorf("check call should not send stdin, got %q", stdin)
		}
		return "", nil
	})

	translator, err := client.Loader()(context.Background(), "Helsinki-NLP/opus-mt-ja-zh")
	if err != nil {
		t.Fatalf("Loader() error = %v", err)
	}
	if translator == nil {
		t.Fatal("nil translator")
	}
	joined := strings.Join(checkArgs, " ")
	if !strings.Contains(joined, "--model Helsinki-NLP/opus-mt-ja-zh") || !strings.Contains(joined, "--check") {
		t.Errorf("unexpected check args: %v", checkArgs)
	}
}

func TestLoaderPropagatesUnavailableModel(t *testing.T) {
	client := New("helper")
	client.WithRunner(func(_ context.Context, _ string, _ ...string) (string, error) {
		return "", errors.New("model not cached")
	})
	if _, err := client.Loader()(context.Background(), "Helsinki-NLP/opus-mt-ja-zh"); err == nil {
		t.Fatal("expected load error")
	}
}

func TestLoaderRejectsEmptyModel(t *testing.T) {
	client := New("helper")
	if _, err := client.Loader()(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty model id")
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	client := New("helper")
	client.WithRunner(func(_ context.Context, stdin string, args ...string) (string, error) {
		joined := strings.Join(args, " ")
		if strings.Contains(joined, "--check") {
			return "", nil
		}
		if !strings.Contains(joined, "--translate") {
			t.Errorf("unexpected args %v", args)
		}
		return "你好 " + stdin + "\n", nil
	})

	translator, err := client.Loader()(context.Background(), "Helsinki-NLP/opus-mt-ja-zh")
	if err != nil {
		t.Fatalf("Loader() error = %v", err)
	}
	got, err := translator.Translate(context.Background(), "konnichiwa")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "你好 konnichiwa" {
		t.Errorf("Translate() = %q", got)
	}
}

func TestTranslateEmptyOutputIsError(t *testing.T) {
	client := New("helper")
	client.WithRunner(func(_ context.Context, _ string, args ...string) (string, error) {
		if strings.Contains(strings.Join(args, " "), "--check") {
			return "", nil
		}
		return "   \n", nil
	})
	translator, err := client.Loader()(context.Background(), "m")
	if err != nil {
		t.Fatalf("Loader() error = %v", err)
	}
	if _, err := translator.Translate(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty translation output")
	}
}

func TestNewDefaultsCommand(t *testing.T) {
	if got := New(" ").command; got != DefaultCommand {
		t.Errorf("command = %q, want %q", got, DefaultCommand)
	}
}
