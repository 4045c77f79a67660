package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "지원 환경을 선택해주세요."}.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "⚠️") {
		t.Error("Expected warning emoji ⚠️ in output")
	}
	if !strings.Contains(output, "지원 환경을 선택해주세요.") {
		t.Error("Expected title in output")
	}
	if strings.Contains(output, "→") {
		t.Error("Did not expect suggestion arrow without suggestion")
	}
}

func TestDisplayWarning_AllParts(t *testing.T) {
	var buf bytes.Buffer
	Warning{
		Title:      "전송에 실패했습니다.",
		Message:    "HTTP 500",
		Suggestion: "잠시 후 다시 시도해주세요",
	}.Display(&buf)

	output := buf.String()
	for _, want := range []string{"전송에 실패했습니다.\n", "    HTTP 500\n", "    → 잠시 후 다시 시도해주세요\n"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output %q", want, output)
		}
	}

	titleIdx := strings.Index(output, "전송에")
	msgIdx := strings.Index(output, "HTTP 500")
	sugIdx := strings.Index(output, "→")
	if !(titleIdx < msgIdx && msgIdx < sugIdx) {
		t.Error("Expected title, message, suggestion order")
	}
}

func TestWarnError(t *testing.T) {
	w := WarnError("입력 오류", errors.New("date of birth must be YYYY-MM-DD"))
	if w.Title != "입력 오류" || w.Message != "date of birth must be YYYY-MM-DD" {
		t.Errorf("unexpected warning %+v", w)
	}

	w = WarnError("입력 오류", nil)
	if w.Message != "" {
		t.Errorf("expected empty message, got %q", w.Message)
	}
}
