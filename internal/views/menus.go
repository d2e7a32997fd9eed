package views

import (
	"fmt"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/notation"
	"github.com/abhisek/pitchperfect/internal/scene"
)

var (
	titleBox    = scene.Box{XStart: 0, XEnd: ScreenWidth, YStart: 50, YEnd: 125}
	subtitleBox = scene.Box{XStart: 0, XEnd: ScreenWidth, YStart: 150, YEnd: 200}
	startBox    = scene.Box{XStart: 600, XEnd: 750, YStart: 450, YEnd: 500}
	returnBox   = scene.Box{XStart: Padding, XEnd: ScreenWidth - Padding, YStart: 300, YEnd: 400}
	reviewBox   = scene.Box{XStart: Padding, XEnd: ScreenWidth - Padding, YStart: 450, YEnd: 550}
)

// Menus holds the menu roots and the surfaces rewritten on reuse.
type Menus struct {
	Home       scene.ID
	Start      scene.ID
	UnitSelect scene.ID
	// Units is the lesson selection menu of each unit, by unit id.
	Units []scene.ID

	LessonDone     scene.ID
	lessonDoneInfo scene.ID

	DrillDone      scene.ID
	drillDoneScore scene.ID

	ReviewDone      scene.ID
	reviewDoneScore scene.ID
	ReviewButton    scene.ID

	roots map[scene.ID]bool
}

// IsMenu reports whether id is the root of a menu.
func (m *Menus) IsMenu(id scene.ID) bool { return m.roots[id] }

// rowBoxes lays n buttons out side by side across the screen.
func rowBoxes(n, yStart, height int) []scene.Box {
	if n == 0 {
		return nil
	}
	slot := ScreenWidth / n
	boxes := make([]scene.Box, n)
	for i := range boxes {
		x := i*slot + Padding
		boxes[i] = scene.Box{XStart: x, XEnd: x + slot - 2*Padding, YStart: yStart, YEnd: yStart + height}
	}
	return boxes
}

func (v *Views) buildMenus(cat *catalog.Catalog) *Menus {
	m := &Menus{roots: make(map[scene.ID]bool)}
	newMenu := func() scene.ID {
		id := v.root()
		m.roots[id] = true
		return id
	}

	m.UnitSelect = newMenu()
	v.add(m.UnitSelect, scene.KindText, titleBox, scene.Content{Text: "Choose a Unit"})
	units := cat.Units()
	unitBoxes := rowBoxes(len(units), 300, 100)
	for i, u := range units {
		v.button(m.UnitSelect, unitBoxes[i], u.Name, fmt.Sprintf("showLessonSelection %d", u.ID))
	}

	for _, u := range units {
		menu := newMenu()
		v.add(menu, scene.KindText, titleBox, scene.Content{Text: u.Name})
		v.add(menu, scene.KindText, subtitleBox, scene.Content{Text: u.Info})
		boxes := rowBoxes(len(u.Lessons)+len(u.Drills), 300, 100)
		slot := 0
		for _, id := range u.Lessons {
			label := fmt.Sprintf("Lesson %d", id)
			if l, err := cat.Lesson(id); err == nil {
				label = l.Name
			}
			v.button(menu, boxes[slot], label, fmt.Sprintf("loadLesson %d %d", id, menu))
			slot++
		}
		for _, id := range u.Drills {
			label := fmt.Sprintf("Drill %d", id)
			if d, err := cat.Drill(id); err == nil {
				label = d.Name
			}
			v.button(menu, boxes[slot], label, fmt.Sprintf("loadDrill %d %d", id, menu))
			slot++
		}
		m.Units = append(m.Units, menu)
	}

	m.Home = newMenu()
	v.add(m.Home, scene.KindImage, FullScreen, scene.Content{Asset: notation.AssetHomePage})
	v.add(m.Home, scene.KindText, titleBox, scene.Content{Text: "Pitch Perfect"})
	m.Start = v.button(m.Home, startBox, "Start", fmt.Sprintf("showUnitSelection %d", m.Home))

	m.LessonDone = newMenu()
	v.add(m.LessonDone, scene.KindText, titleBox, scene.Content{Text: "Lesson Complete"})
	m.lessonDoneInfo = v.add(m.LessonDone, scene.KindText, subtitleBox, scene.Content{})
	v.button(m.LessonDone, returnBox, "Return to Menu", "back")

	m.DrillDone = newMenu()
	v.add(m.DrillDone, scene.KindText, titleBox, scene.Content{Text: "Drill Complete"})
	m.drillDoneScore = v.add(m.DrillDone, scene.KindText, subtitleBox, scene.Content{})
	v.button(m.DrillDone, returnBox, "Return to Menu", "back")

	m.ReviewDone = newMenu()
	v.add(m.ReviewDone, scene.KindText, titleBox, scene.Content{Text: "Drill Complete"})
	m.reviewDoneScore = v.add(m.ReviewDone, scene.KindText, subtitleBox, scene.Content{})
	v.button(m.ReviewDone, returnBox, "Return to Menu", "back")
	m.ReviewButton = v.button(m.ReviewDone, reviewBox, "Review Missed Cards", "back")

	return m
}

// PrepareLessonComplete fills the lesson-complete screen for l and returns
// its root.
func (v *Views) PrepareLessonComplete(l *catalog.Lesson) scene.ID {
	info := ""
	if l != nil {
		info = l.Name
		if l.Info != "" {
			info += ": " + l.Info
		}
	}
	v.tree.SetText(v.Menus.lessonDoneInfo, info)
	return v.Menus.LessonDone
}

// PrepareDrillComplete fills the drill-complete screen and returns its root.
func (v *Views) PrepareDrillComplete(score activity.Score) scene.ID {
	text := fmt.Sprintf("Score: %d/%d", score.Correct, score.Total)
	if score.Total > 0 && score.Correct == score.Total {
		text += " - you answered everything correctly!"
	}
	v.tree.SetText(v.Menus.drillDoneScore, text)
	return v.Menus.DrillDone
}

// PrepareReviewComplete fills the drill-complete screen that offers a
// review of missed cards and points its review button at review.
func (v *Views) PrepareReviewComplete(score activity.Score, review *catalog.Lesson) scene.ID {
	v.tree.SetText(v.Menus.reviewDoneScore, fmt.Sprintf("Score: %d/%d", score.Correct, score.Total))
	v.rebind(v.Menus.ReviewButton, fmt.Sprintf("loadLesson %d %d", review.ID, v.Menus.ReviewDone))
	return v.Menus.ReviewDone
}
