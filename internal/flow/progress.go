package flow

// ProgressNode is one entry of the progress header shown above the
// diagnosis, result and action screens.
type ProgressNode struct {
	Number   int
	Title    string
	Complete bool
	Active   bool
}

var progressScreens = []struct {
	screen Screen
	title  string
}{
	{ScreenDiagnosis, "아이 진단"},
	{ScreenResult, "솔루션 추천"},
	{ScreenAction, "신청 및 문의"},
}

// Progress returns the progress header for the current screen.
// The intro screen has no header and yields nil.
func (c *Controller) Progress() []ProgressNode {
	return ProgressFor(c.screen)
}

// ProgressFor returns the progress header for screen.
func ProgressFor(screen Screen) []ProgressNode {
	current := -1
	for i, p := range progressScreens {
		if p.screen == screen {
			current = i
		}
	}
	if current < 0 {
		return nil
	}

	nodes := make([]ProgressNode, len(progressScreens))
	for i, p := range progressScreens {
		nodes[i] = ProgressNode{
			Number:   i + 1,
			Title:    p.title,
			Complete: i < current,
			Active:   i == current,
		}
	}
	return nodes
}
