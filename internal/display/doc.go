// Package display renders the terminal chrome of a questionnaire session:
// the progress header above each screen, numbered choice lists and
// validation warnings.
//
// All functions accept an io.Writer for testability. Colors come from
// fatih/color and are dropped automatically when the output is not a
// terminal or NO_COLOR is set.
//
//	display.RenderProgress(os.Stdout, controller.Progress())
//
//	display.Warning{
//	    Title:      "지원 환경을 선택해주세요.",
//	    Suggestion: "1-3 중 하나를 입력하세요",
//	}.Display(os.Stdout)
package display
