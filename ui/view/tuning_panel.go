package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/threshold-tuner/ui/presenter"
	"github.com/soocke/threshold-tuner/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PanelHandlers are the user actions the tuning panel reports.
type PanelHandlers struct {
	OnSelectType    func(name string)
	OnChange        func()
	OnStep          func()
	OnSave          func()
	OnTogglePreview func() (running bool)
}

// TuningPanel holds the threshold form: a type selector, three range fields, the
// morphology steppers and the save/status row. It implements presenter.Form.
type TuningPanel struct {
	logger     *slog.Logger
	handlers   PanelHandlers
	types      []string
	typeSelect *TComboboxWidget
	ranges     map[presenter.Control]*TextWidget
	counts     map[presenter.Control]*LabelWidget
	countVals  map[presenter.Control]string
	status     *TLabelWidget
	previewBtn *TButtonWidget
}

// NewTuningPanel returns an unbuilt panel for types; call Build to create the widgets.
func NewTuningPanel(types []string, h PanelHandlers, logger *slog.Logger) *TuningPanel {
	return &TuningPanel{
		logger:    logger,
		handlers:  h,
		types:     append([]string(nil), types...),
		ranges:    make(map[presenter.Control]*TextWidget),
		counts:    make(map[presenter.Control]*LabelWidget),
		countVals: make(map[presenter.Control]string),
	}
}

var controlLabels = map[presenter.Control]string{
	presenter.ControlHue:       "Hue (min;max)",
	presenter.ControlSat:       "Saturation (min,max)",
	presenter.ControlVal:       "Value (min,max)",
	presenter.ControlErosions:  "Erosions",
	presenter.ControlDilations: "Dilations",
}

// Build grids the panel starting at startRow and returns the next free row.
func (v *TuningPanel) Build(startRow int) (row int) {
	row = startRow
	Grid(Label(Txt("Settings"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	types := v.types
	if len(types) == 0 {
		types = []string{"<none>"}
	}
	v.typeSelect = TCombobox(Values(types), Width(16))
	Grid(v.typeSelect, Row(row), Column(1), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.typeSelect.Current(0)
	Bind(v.typeSelect, "<<ComboboxSelected>>", Command(v.typeSelected))
	row++

	for _, c := range []presenter.Control{presenter.ControlHue, presenter.ControlSat, presenter.ControlVal} {
		Grid(Label(Txt(controlLabels[c]), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		Bind(w, "<Return>", Command(v.changed))
		Bind(w, "<FocusOut>", Command(v.changed))
		v.ranges[c] = w
		row++
	}

	for _, c := range []presenter.Control{presenter.ControlErosions, presenter.ControlDilations} {
		Grid(Label(Txt(controlLabels[c]), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		minus := TButton(Txt("−"), Style(theme.StyleStepButton), Width(3), Command(func() { v.step(c, -1) }))
		Grid(minus, Row(row), Column(1), Sticky("w"), Padx("0.2m"), Pady("0.15m"))
		lbl := Label(Txt("0"), Width(4), Anchor("center"), Borderwidth(1), Relief("sunken"))
		Grid(lbl, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
		plus := TButton(Txt("+"), Style(theme.StyleStepButton), Width(3), Command(func() { v.step(c, 1) }))
		Grid(plus, Row(row), Column(3), Sticky("w"), Padx("0.2m"), Pady("0.15m"))
		v.counts[c] = lbl
		v.countVals[c] = "0"
		row++
	}

	btnFrame := Frame()
	Grid(btnFrame, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	save := TButton(Txt("Save to disk"), Style(theme.StylePrimaryButton), Command(func() {
		if v.handlers.OnSave != nil {
			v.handlers.OnSave()
		}
	}))
	Grid(save, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.previewBtn = TButton(Txt("Pause preview"), Command(v.togglePreview))
	Grid(v.previewBtn, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	v.status = TLabel(Txt(""), Style(theme.StyleStatusLabel), Anchor("w"))
	Grid(v.status, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

// Value returns the text a control currently holds.
func (v *TuningPanel) Value(c presenter.Control) string {
	if w := v.ranges[c]; w != nil {
		return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
	}
	return v.countVals[c]
}

// SetValue replaces a control's text.
func (v *TuningPanel) SetValue(c presenter.Control, val string) {
	if w := v.ranges[c]; w != nil {
		w.Delete("1.0", END)
		w.Insert("1.0", val)
		return
	}
	if lbl := v.counts[c]; lbl != nil {
		v.countVals[c] = val
		lbl.Configure(Txt(val))
	}
}

// Notify fires the change handler as a user edit of c would.
func (v *TuningPanel) Notify(c presenter.Control) { v.changed() }

// SetStatus shows text on the status line.
func (v *TuningPanel) SetStatus(text string) {
	if v != nil && v.status != nil {
		v.status.Configure(Txt(text))
	}
}

// SelectType moves the combobox to name without firing the selection handler.
func (v *TuningPanel) SelectType(name string) {
	if v == nil || v.typeSelect == nil {
		return
	}
	for i, t := range v.types {
		if t == name {
			v.typeSelect.Current(i)
			return
		}
	}
}

func (v *TuningPanel) changed() {
	if v.handlers.OnChange != nil {
		v.handlers.OnChange()
	}
}

func (v *TuningPanel) step(c presenter.Control, delta int) {
	n, err := strconv.Atoi(v.countVals[c])
	if err != nil {
		n = 0
	}
	n = stepCount(n, delta)
	v.SetValue(c, strconv.Itoa(n))
	if v.handlers.OnStep != nil {
		v.handlers.OnStep()
	}
}

// stepCount applies delta and never goes below zero.
func stepCount(n, delta int) int {
	n += delta
	if n < 0 {
		return 0
	}
	return n
}

func (v *TuningPanel) typeSelected() {
	if v.typeSelect == nil {
		return
	}
	idx, err := strconv.Atoi(v.typeSelect.Current(nil))
	if err != nil || idx < 0 || idx >= len(v.types) {
		if v.logger != nil {
			v.logger.Error("settings type selection parse error", "index", idx, "error", err)
		}
		return
	}
	if v.handlers.OnSelectType != nil {
		v.handlers.OnSelectType(v.types[idx])
	}
}

func (v *TuningPanel) togglePreview() {
	if v.handlers.OnTogglePreview == nil || v.previewBtn == nil {
		return
	}
	if v.handlers.OnTogglePreview() {
		v.previewBtn.Configure(Txt("Pause preview"))
	} else {
		v.previewBtn.Configure(Txt("Resume preview"))
	}
}
