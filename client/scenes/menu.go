package scenes

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/isozombie/client/fonts"
	"github.com/cbodonnell/isozombie/client/objects"
	"github.com/cbodonnell/isozombie/client/ui"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

type MenuScene struct {
	*BaseScene

	title      string
	onStart    func(name string) error
	onContinue func() error
	topScores  []*models.Score
	ui         *ebitenui.UI
	name       string
	startErr   string
}

type MenuSceneOptions struct {
	Title string
	// Name is the name the input starts with
	Name      string
	TopScores []*models.Score
	// OnStart is called when the start button is pressed.
	OnStart func(name string) error
	// OnContinue resumes the saved session. The button is hidden when nil.
	OnContinue func() error
}

var _ Scene = &MenuScene{}

func NewMenuScene(opts MenuSceneOptions) (Scene, error) {
	return &MenuScene{
		BaseScene:  NewBaseScene(objects.NewBaseObject("menu-root", nil)),
		title:      opts.Title,
		onStart:    opts.OnStart,
		onContinue: opts.OnContinue,
		topScores:  opts.TopScores,
		name:       opts.Name,
	}, nil
}

func (s *MenuScene) Init() error {
	s.renderUI()
	return s.BaseScene.Init()
}

// ScoreLines formats the scoreboard.
func ScoreLines(scores []*models.Score) []string {
	if len(scores) == 0 {
		return []string{"No scores yet"}
	}
	lines := make([]string, 0, len(scores))
	for i, score := range scores {
		lines = append(lines, fmt.Sprintf("%2d. %-16s %6d  wave %d", i+1, score.Name, score.Points, score.Wave))
	}
	return lines
}

func (s *MenuScene) renderUI() {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:   image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
	}
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.NRGBA{254, 255, 255, 255},
		Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
	}
	buttonPadding := widget.Insets{
		Left:   30,
		Right:  30,
		Top:    5,
		Bottom: 5,
	}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{
		Position: widget.RowLayoutPositionCenter,
	})

	fontFace := fonts.TTFNormalFont

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(16),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    80,
				Left:   120,
				Right:  120,
				Bottom: 60,
			}))),
	)

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text(s.title, fonts.TTFLargeFont, color.NRGBA{R: 200, G: 40, B: 40, A: 255}),
		widget.TextOpts.WidgetOpts(centered),
	))

	nameTextInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			}),
		),
		widget.TextInputOpts.MobileInputMode("text"),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
			Disabled: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
		}),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.NRGBA{254, 255, 255, 255},
			Disabled:      color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			Caret:         color.NRGBA{254, 255, 255, 255},
			DisabledCaret: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(5)),
		widget.TextInputOpts.CaretOpts(
			widget.CaretOpts.Size(fontFace, 2),
		),
		widget.TextInputOpts.Placeholder("Name"),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			s.name = args.InputText
		}),
	)
	nameTextInput.SetText(s.name)
	rootContainer.AddChild(nameTextInput)

	startButton := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(centered),
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text("Start", fontFace, buttonTextColor),
		widget.ButtonOpts.TextPadding(buttonPadding),
	)
	rootContainer.AddChild(startButton)

	var continueButton *widget.Button
	if s.onContinue != nil {
		continueButton = widget.NewButton(
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text("Continue", fontFace, buttonTextColor),
			widget.ButtonOpts.TextPadding(buttonPadding),
		)
		rootContainer.AddChild(continueButton)
	}

	if s.startErr != "" {
		rootContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(s.startErr, fontFace, color.NRGBA{R: 255, G: 0, B: 0, A: 255}),
			widget.TextOpts.WidgetOpts(centered),
		))
		s.startErr = ""
	}

	for _, line := range ScoreLines(s.topScores) {
		rootContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(line, fonts.TTFSmallFont, color.NRGBA{R: 220, G: 220, B: 220, A: 255}),
			widget.TextOpts.WidgetOpts(centered),
		))
	}

	// auto focus the name text input
	nameTextInput.Focus(true)

	startHandler := func(args interface{}) {
		if err := s.onStart(nameTextInput.GetText()); err != nil {
			log.Error("Failed to start game: %v", err)
			s.startErr = ui.Message(err, "Failed to start. Please try again.")
			s.renderUI()
		}
	}
	nameTextInput.SubmitEvent.AddHandler(startHandler)
	startButton.ClickedEvent.AddHandler(startHandler)

	if continueButton != nil {
		continueButton.ClickedEvent.AddHandler(func(args interface{}) {
			if err := s.onContinue(); err != nil {
				log.Error("Failed to continue game: %v", err)
				s.startErr = ui.Message(err, "The saved game could not be loaded.")
				s.onContinue = nil
				s.renderUI()
			}
		})
	}

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *MenuScene) Update() error {
	s.ui.Update()
	return s.BaseScene.Update()
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
	s.BaseScene.Draw(screen)
}
