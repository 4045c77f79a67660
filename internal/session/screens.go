package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/simplestep/pathfinder/internal/contact"
	"github.com/simplestep/pathfinder/internal/diagnosis"
	"github.com/simplestep/pathfinder/internal/display"
	"github.com/simplestep/pathfinder/internal/flow"
	"github.com/simplestep/pathfinder/internal/models"
)

// Screen texts.
const (
	IntroHeadline             = "우리 아이, 어떻게 도와주어야 할까요?"
	IntroDescription          = "아이의 현재 상황을 알려주시면, 가장 적합한 솔루션을 추천해 드립니다."
	MissingEnvironmentMessage = "지원 환경을 선택해주세요."
	SubmitFailedMessage       = "전송에 실패했습니다. 잠시 후 다시 시도해주세요."
	SubmitSuccessMessage      = "신청이 완료되었습니다."
	SubmitSuccessDetail       = "영업일 기준 1-2일 내에 전문가가 연락 드릴 예정입니다."
	InvalidFormMessage        = "입력 내용을 확인해주세요."
	InvalidSelectionMessage   = "잘못된 입력입니다."
	NoCategorySelectedText    = "없음"
)

func (s *Session) intro(ctx context.Context) error {
	display.Heading(s.out, IntroHeadline)
	fmt.Fprintln(s.out, IntroDescription)
	fmt.Fprintln(s.out)

	if _, err := s.menu(ctx, "Enter: 진단 시작하기 / q: 종료 > "); err != nil {
		return err
	}

	s.state = diagnosis.NewState(s.catalog)
	return s.controller.Start()
}

func (s *Session) diagnosis(ctx context.Context) error {
	display.RenderProgress(s.out, s.controller.Progress())
	if s.state == nil {
		s.state = diagnosis.NewState(s.catalog)
	}

	for _, cat := range s.catalog.Categories() {
		if err := s.askCategory(ctx, cat); err != nil {
			return err
		}
	}

	s.showSelectedCategories()

	for {
		if err := s.askEnvironment(ctx); err != nil {
			return err
		}

		data, err := s.state.Complete()
		if errors.Is(err, diagnosis.ErrMissingEnvironment) {
			display.Warning{Title: MissingEnvironmentMessage}.Display(s.out)
			continue
		}
		if err != nil {
			return err
		}

		_, err = s.controller.Complete(data)
		return err
	}
}

// askCategory shows the checklist of one category and records the
// selected question numbers. Unlisted questions are cleared.
func (s *Session) askCategory(ctx context.Context, cat models.Category) error {
	display.Heading(s.out, fmt.Sprintf("%s %s", cat.Icon, cat.Title))

	for {
		choices := make([]display.Choice, len(cat.Questions))
		for i, q := range cat.Questions {
			choices[i] = display.Choice{Label: q.Label, Checked: s.state.Answer(cat.ID, q.ID)}
		}
		display.RenderChoices(s.out, choices)

		answer, err := s.menu(ctx, "해당하는 번호를 입력하세요 (예: 1,3 / 없으면 Enter) > ")
		if err != nil {
			return err
		}

		selected, err := parseSelection(answer, len(cat.Questions))
		if err != nil {
			display.WarnError(InvalidSelectionMessage, err).Display(s.out)
			continue
		}

		for i, q := range cat.Questions {
			if err := s.state.SetAnswer(cat.ID, q.ID, selected[i+1]); err != nil {
				return err
			}
		}
		fmt.Fprintln(s.out)
		return nil
	}
}

// showSelectedCategories lists the categories with at least one checked answer.
func (s *Session) showSelectedCategories() {
	var titles []string
	for _, cat := range s.catalog.Categories() {
		if s.state.IsCategorySelected(cat.ID) {
			titles = append(titles, cat.Title)
		}
	}
	if len(titles) == 0 {
		fmt.Fprintf(s.out, "선택한 영역: %s\n\n", NoCategorySelectedText)
		return
	}
	fmt.Fprintf(s.out, "선택한 영역: %s\n\n", strings.Join(titles, ", "))
}

// askEnvironment records the support environment. An empty answer
// leaves it unset.
func (s *Session) askEnvironment(ctx context.Context) error {
	display.Heading(s.out, "어떤 지원 환경을 원하시나요?")

	envs := s.catalog.Environments()
	for {
		choices := make([]display.Choice, len(envs))
		for i, e := range envs {
			choices[i] = display.Choice{Label: e.Title, Hint: e.Subtitle, Checked: s.state.Environment() == e.ID}
		}
		display.RenderChoices(s.out, choices)

		answer, err := s.menu(ctx, "번호를 선택하고 Enter를 누르면 결과를 볼 수 있습니다 > ")
		if err != nil {
			return err
		}
		if answer == "" {
			return nil
		}

		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(envs) {
			display.Warning{
				Title:      InvalidSelectionMessage,
				Suggestion: fmt.Sprintf("1-%d 중 하나를 입력하세요", len(envs)),
			}.Display(s.out)
			continue
		}
		return s.state.SetEnvironment(envs[n-1].ID)
	}
}

func (s *Session) result(ctx context.Context) error {
	display.RenderProgress(s.out, s.controller.Progress())

	plan, ok := s.controller.Plan()
	if !ok {
		fmt.Fprintln(s.out, flow.FallbackMessage)
	} else {
		display.Heading(s.out, fmt.Sprintf("추천 플랜: %s", plan.Name))
		fmt.Fprintln(s.out, s.formatter.Plan(plan))
	}

	if _, err := s.menu(ctx, "Enter: 신청 및 문의하기 / q: 종료 > "); err != nil {
		return err
	}

	err := s.controller.Proceed()
	if errors.Is(err, flow.ErrDataUnavailable) {
		display.Warning{Title: flow.FallbackMessage}.Display(s.out)
		return nil
	}
	return err
}

func (s *Session) action(ctx context.Context) error {
	display.RenderProgress(s.out, s.controller.Progress())

	data, hasData := s.controller.Diagnosis()
	plan, hasPlan := s.controller.Plan()
	if !hasData || !hasPlan {
		fmt.Fprintln(s.out, flow.FallbackMessage)
		return s.finish(ctx)
	}

	display.Heading(s.out, "신청 및 문의")
	fmt.Fprintf(s.out, "추천 플랜: %s\n\n", s.formatter.PlanDisplay(plan))
	fmt.Fprintln(s.out, s.formatter.Diagnosis(data))

	form, err := s.askForm(ctx)
	if err != nil {
		return err
	}

	payload := contact.BuildPayload(s.formName, form, s.formatter, data, plan)
	for {
		fmt.Fprintln(s.out, "전송 중...")
		if err := s.tracker.Submit(ctx, payload); err != nil && s.tracker.Status() != contact.StatusError {
			return err
		}

		switch s.tracker.Status() {
		case contact.StatusSuccess:
			s.logger.LogSubmission(nil)
			display.Success(s.out, SubmitSuccessMessage)
			fmt.Fprintln(s.out, SubmitSuccessDetail)
			fmt.Fprintln(s.out)
			return s.finish(ctx)
		case contact.StatusError:
			s.logger.LogSubmission(s.tracker.Err())
			display.Warning{Title: SubmitFailedMessage}.Display(s.out)
		default:
			return fmt.Errorf("unexpected submission status %s", s.tracker.Status())
		}

		answer, err := s.menu(ctx, "r: 다시 시도 / Enter: 처음으로 돌아가기 / q: 종료 > ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "r") {
			return s.restart()
		}
	}
}

// askForm collects the contact form until it validates.
func (s *Session) askForm(ctx context.Context) (contact.Form, error) {
	for {
		var form contact.Form
		fields := []struct {
			label string
			dest  *string
		}{
			{"보호자 성함 > ", &form.GuardianName},
			{"아이 이름 > ", &form.ChildName},
			{"아이 생년월일 (YYYY-MM-DD) > ", &form.ChildDOB},
			{"문의 내용 (선택) > ", &form.Inquiry},
		}
		for _, f := range fields {
			v, err := s.prompt(ctx, f.label)
			if err != nil {
				return contact.Form{}, err
			}
			*f.dest = v
		}

		consent, err := s.prompt(ctx, "개인정보 수집 및 이용에 동의하십니까? (y/n) > ")
		if err != nil {
			return contact.Form{}, err
		}
		form.PrivacyConsent = isYes(consent)

		err = form.Validate()
		switch {
		case err == nil:
			return form, nil
		case errors.Is(err, contact.ErrPrivacyConsentRequired):
			display.Warning{Title: err.Error() + "."}.Display(s.out)
		default:
			display.WarnError(InvalidFormMessage, err).Display(s.out)
		}
	}
}

// finish waits for the user to go back to the intro screen.
func (s *Session) finish(ctx context.Context) error {
	if _, err := s.menu(ctx, "Enter: 처음으로 돌아가기 / q: 종료 > "); err != nil {
		return err
	}
	return s.restart()
}

func (s *Session) restart() error {
	if err := s.controller.Restart(); err != nil {
		return err
	}
	s.state = nil
	s.tracker.Reset()
	return nil
}

// parseSelection parses comma or space separated 1-based numbers up to limit.
// The result maps each selected number to true.
func parseSelection(input string, limit int) (map[int]bool, error) {
	selected := make(map[int]bool)
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > limit {
			return nil, fmt.Errorf("invalid selection %q: must be between 1 and %d", f, limit)
		}
		selected[n] = true
	}
	return selected, nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "예", "네", "ㅇ":
		return true
	}
	return false
}
