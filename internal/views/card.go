package views

import (
	"fmt"
	"time"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/catalog"
	"github.com/abhisek/pitchperfect/internal/notation"
	"github.com/abhisek/pitchperfect/internal/scene"
)

// MaxNotes is the largest chord a card view can draw.
const MaxNotes = 4

// inputOffset shifts played notes right of the target notes.
const inputOffset = 200

var (
	staffBox     = scene.Box{XStart: 170, XEnd: 1190, YStart: 0, YEnd: 800}
	leftHandBox  = scene.Box{XStart: 155, XEnd: 355, YStart: 600, YEnd: 800}
	rightHandBox = scene.Box{XStart: 995, XEnd: 1195, YStart: 600, YEnd: 800}
	feedbackBox  = scene.Box{XStart: 1050, XEnd: 1205, YStart: 300, YEnd: 500}
	backBox      = scene.Box{XStart: 0, XEnd: 150, YStart: 0, YEnd: 80}
	progressBox  = scene.Box{XStart: 200, XEnd: 1250, YStart: 20, YEnd: 50}
	captionBox   = scene.Box{XStart: 1000, XEnd: 1300, YStart: 100, YEnd: 160}
	countdownBox = scene.Box{XStart: 400, XEnd: 600, YStart: 100, YEnd: 160}
)

// CardView shows one flashcard: staff, hands and note glyphs. Lesson views
// add feedback imagery, played-note glyphs and a progress bar; drill views
// add a countdown.
type CardView struct {
	v      *Views
	lesson bool

	Root      scene.ID
	Staff     scene.ID
	LeftHand  scene.ID
	RightHand scene.ID
	Back      scene.ID
	Caption   scene.ID
	Notes     []scene.ID

	Feedback    scene.ID
	ProgressBg  scene.ID
	ProgressBar scene.ID
	Inputs      []scene.ID

	Countdown scene.ID
}

func (v *Views) newCardView(lesson bool) *CardView {
	cv := &CardView{
		v:           v,
		lesson:      lesson,
		Feedback:    scene.NoID,
		ProgressBg:  scene.NoID,
		ProgressBar: scene.NoID,
		Countdown:   scene.NoID,
	}
	cv.Root = v.root()
	cv.Staff = v.add(cv.Root, scene.KindImage, staffBox, scene.Content{Asset: notation.AssetTrebleStaff})
	cv.LeftHand = v.add(cv.Root, scene.KindImage, leftHandBox, scene.Content{Asset: notation.AssetLeftHandBlank})
	cv.RightHand = v.add(cv.Root, scene.KindImage, rightHandBox, scene.Content{Asset: notation.AssetRightHandBlank})
	cv.Back = v.button(cv.Root, backBox, "Main Menu", "back")
	cv.Caption = v.add(cv.Root, scene.KindText, captionBox, scene.Content{})

	if lesson {
		cv.Feedback = v.add(cv.Root, scene.KindImage, feedbackBox, scene.Content{Asset: notation.AssetCheck})
		cv.ProgressBg = v.add(cv.Root, scene.KindRectangle, progressBox, scene.Content{Color: ColorProgressBg})
		cv.ProgressBar = v.add(cv.Root, scene.KindRectangle, scene.Box{
			XStart: progressBox.XStart, XEnd: progressBox.XStart,
			YStart: progressBox.YStart, YEnd: progressBox.YEnd,
		}, scene.Content{Color: ColorProgressBar})
		// The bar is drawn over its background.
		v.tree.SetRank(cv.ProgressBar, v.tree.Rank(cv.ProgressBg)+1)
	} else {
		cv.Countdown = v.add(cv.Root, scene.KindText, countdownBox, scene.Content{})
	}

	for i := 0; i < MaxNotes; i++ {
		cv.Notes = append(cv.Notes, v.add(cv.Root, scene.KindImage, scene.Box{}, scene.Content{}))
	}
	if lesson {
		for i := 0; i < MaxNotes; i++ {
			cv.Inputs = append(cv.Inputs, v.add(cv.Root, scene.KindImage, scene.Box{}, scene.Content{}))
		}
	}
	return cv
}

// IsLesson reports whether this is the lesson variant.
func (cv *CardView) IsLesson() bool { return cv.lesson }

func (cv *CardView) show(card catalog.Flashcard, index, total int) {
	t := cv.v.tree
	cv.v.ShowSubtree(cv.Root)
	if cv.lesson {
		cv.hideFeedback()
	}

	t.SetAsset(cv.Staff, notation.StaffAsset(card.Clef))
	left, right := notation.HandAssets(card.Hand)
	t.SetAsset(cv.LeftHand, left)
	t.SetAsset(cv.RightHand, right)
	t.SetText(cv.Caption, fmt.Sprintf("Card %d of %d", index+1, total))
	cv.placeGlyphs(cv.Notes, card.Pitches, card.Clef, 0)

	if cv.lesson {
		width := progressBox.Width() * index / total
		t.SetAbsolute(cv.ProgressBar, scene.Box{
			XStart: progressBox.XStart, XEnd: progressBox.XStart + width,
			YStart: progressBox.YStart, YEnd: progressBox.YEnd,
		})
	} else if t.Content(cv.Countdown).Text == "" {
		t.SetHidden(cv.Countdown, true)
	}
}

func (cv *CardView) placeGlyphs(slots []scene.ID, pitches []int, clef catalog.Clef, dx int) {
	t := cv.v.tree
	for i, id := range slots {
		if i >= len(pitches) {
			t.SetHidden(id, true)
			continue
		}
		box, glyph, ok := notation.Place(pitches[i], clef)
		if !ok {
			t.SetHidden(id, true)
			continue
		}
		t.SetAbsolute(id, box.Translate(dx, 0))
		t.SetAsset(id, glyph.Asset())
		t.SetHidden(id, false)
	}
}

func (cv *CardView) showFeedback(card catalog.Flashcard, input []int, correct bool) {
	t := cv.v.tree
	asset := notation.AssetCross
	if correct {
		asset = notation.AssetCheck
	}
	t.SetAsset(cv.Feedback, asset)
	t.SetHidden(cv.Feedback, false)
	if len(input) <= MaxNotes {
		cv.placeGlyphs(cv.Inputs, input, card.Clef, inputOffset)
	}
}

func (cv *CardView) hideFeedback() {
	t := cv.v.tree
	t.SetHidden(cv.Feedback, true)
	for _, id := range cv.Inputs {
		t.SetHidden(id, true)
	}
}

func (cv *CardView) showCountdown(remaining time.Duration) {
	secs := int(remaining / time.Second)
	cv.v.tree.SetText(cv.Countdown, fmt.Sprintf("%d:%02d", secs/60, secs%60))
	cv.v.tree.SetHidden(cv.Countdown, false)
}

func (cv *CardView) close() {
	cv.v.Hide(cv.Root)
	if cv.Countdown != scene.NoID {
		cv.v.tree.SetText(cv.Countdown, "")
	}
}

// Adapter presents activities on the card views.
type Adapter struct {
	v *Views
}

var _ activity.Adapter = (*Adapter)(nil)

// Adapter returns the activity adapter bound to these views.
func (v *Views) Adapter() *Adapter { return &Adapter{v: v} }

func (a *Adapter) view(kind activity.Kind) *CardView {
	if kind == activity.KindDrill {
		return a.v.Drill
	}
	return a.v.Lesson
}

func (a *Adapter) ShowFlashcard(kind activity.Kind, card catalog.Flashcard, index, total int) {
	a.view(kind).show(card, index, total)
}

func (a *Adapter) ShowFeedback(card catalog.Flashcard, input []int, correct bool) {
	a.v.Lesson.showFeedback(card, input, correct)
}

func (a *Adapter) HideFeedback() { a.v.Lesson.hideFeedback() }

func (a *Adapter) ShowCountdown(remaining time.Duration) { a.v.Drill.showCountdown(remaining) }

func (a *Adapter) Close(kind activity.Kind) { a.view(kind).close() }
