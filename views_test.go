package main

import (
	"fmt"
	"strings"
	"testing"
)

func TestView_ZeroSizeRendersNothing(t *testing.T) {
	m := uiTestModel(t, someTodos(1), nil)
	m.width = 0
	m.height = 0

	if got := m.View(); got != "" {
		t.Fatalf("expected empty frame before the first resize, got %q", got)
	}
}

func TestRenderHelpBar_WidthTiers(t *testing.T) {
	cases := []struct {
		width    int
		contains string
		excludes string
	}{
		{95, "Enter: Select", ""},
		{75, "Tab: Toggle", "Enter: Select"},
		{55, "d: Del", "Tab: Toggle"},
		{40, "?: Help", "r: Refresh"},
	}
	for _, tc := range cases {
		bar := renderHelpBar(tc.width, bottomBarHeight)
		if !strings.Contains(bar, tc.contains) {
			t.Errorf("width %d: expected %q in help bar", tc.width, tc.contains)
		}
		if tc.excludes != "" && strings.Contains(bar, tc.excludes) {
			t.Errorf("width %d: did not expect %q in help bar", tc.width, tc.excludes)
		}
	}
}

func TestRenderList_DanglingLinkMarker(t *testing.T) {
	m := uiTestModel(t, []Todo{
		{Description: "live", Status: TodoStatusPending, Worktree: "wt"},
		{Description: "stale", Status: TodoStatusDone, Worktree: "gone"},
	}, []Worktree{{Name: "wt", Path: "/repos/wt"}})

	out := m.renderList(80, 20)

	if !strings.Contains(out, "(gone) [deleted]") {
		t.Fatalf("expected dangling link marker, got:\n%s", out)
	}
	if strings.Contains(out, "(wt) [deleted]") {
		t.Fatalf("live link must not carry the deleted marker:\n%s", out)
	}
}

func TestRenderList_ErrorReplacesTitle(t *testing.T) {
	m := uiTestModel(t, someTodos(1), nil)
	m.errMsg = "Failed to delete worktree: exit status 1"

	out := m.renderList(80, 20)

	if !strings.Contains(out, m.errMsg) {
		t.Fatalf("expected error line in list, got:\n%s", out)
	}
	if strings.Contains(out, "Todos & Worktrees") {
		t.Fatalf("title must yield to the error line:\n%s", out)
	}
}

func TestRenderList_ScrollsSelectionIntoView(t *testing.T) {
	todos := make([]Todo, 0, 30)
	for i := 0; i < 30; i++ {
		todos = append(todos, Todo{
			Description: fmt.Sprintf("task-%02d", i),
			Status:      TodoStatusPending,
		})
	}
	m := uiTestModel(t, todos, nil)
	m.listIndex = 25

	out := m.renderList(80, 10) // 7 visible rows

	if !strings.Contains(out, ">> ") {
		t.Fatalf("selection marker missing from frame:\n%s", out)
	}
	if !strings.Contains(out, "task-25") {
		t.Fatalf("selected row must be visible:\n%s", out)
	}
	if !strings.Contains(out, "task-19") || strings.Contains(out, "task-18") {
		t.Fatalf("expected window [19,25], got:\n%s", out)
	}
	if strings.Contains(out, "task-00") {
		t.Fatalf("rows above the window must not render:\n%s", out)
	}
}

func TestRenderList_NoScrollWhenListFits(t *testing.T) {
	m := uiTestModel(t, []Todo{
		{Description: "first", Status: TodoStatusPending},
		{Description: "second", Status: TodoStatusPending},
	}, nil)
	m.listIndex = 1

	out := m.renderList(80, 20)
	for _, want := range []string{"first", "second"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q rendered, got:\n%s", want, out)
		}
	}
}

func TestRenderList_EmptyStateHint(t *testing.T) {
	m := uiTestModel(t, nil, nil)

	out := m.renderList(80, 20)

	if !strings.Contains(out, "No todos yet") {
		t.Fatalf("expected empty-state hint, got:\n%s", out)
	}
}

func TestViewCreating_FooterTracksValidity(t *testing.T) {
	m := uiTestModel(t, nil, nil)
	m.startCreate()

	out := m.View()
	if !strings.Contains(out, "Type a description to continue") {
		t.Fatalf("expected blocked footer, got:\n%s", out)
	}

	m.descInput.SetValue("Fix login")
	m.derivedName = dasherize(m.descInput.Value())
	out = m.View()
	if !strings.Contains(out, "Enter: Create") {
		t.Fatalf("expected submit footer, got:\n%s", out)
	}
	if !strings.Contains(out, "fix-login") {
		t.Fatalf("expected derived name shown, got:\n%s", out)
	}
}

func TestViewConfirmDelete_DirtyWarning(t *testing.T) {
	m := uiTestModel(t, someTodos(1), nil)
	m.mode = modeConfirmDelete
	m.deleteTarget = Worktree{Name: "wt", Path: "/repos/wt"}
	m.deleteDirty = true

	out := m.View()
	if !strings.Contains(out, "uncommitted changes") {
		t.Fatalf("expected dirty warning, got:\n%s", out)
	}
	if !strings.Contains(out, "(force delete)") {
		t.Fatalf("expected force wording, got:\n%s", out)
	}
}

func TestViewConfirmDelete_CleanHasNoWarning(t *testing.T) {
	m := uiTestModel(t, someTodos(1), nil)
	m.mode = modeConfirmDelete
	m.deleteTarget = Worktree{Name: "wt", Path: "/repos/wt"}

	out := m.View()
	if strings.Contains(out, "uncommitted changes") {
		t.Fatalf("clean delete must not warn, got:\n%s", out)
	}
	if strings.Contains(out, "(force delete)") {
		t.Fatalf("clean delete must not force, got:\n%s", out)
	}
}

func TestViewHelp_ListsKeyBindings(t *testing.T) {
	m := uiTestModel(t, nil, nil)
	m.mode = modeHelp

	out := m.View()
	for _, want := range []string{"Navigation", "Actions", "Toggle this help screen", "Press ? or Esc to close"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in help view", want)
		}
	}
}
