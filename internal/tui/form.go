package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shopctl/internal/catalog"
	"shopctl/internal/imaging"
)

// formSection indexes the focusable regions of an entity form, in tab
// order: the text inputs, then the size chips, the color chips, the image
// path input, and the submit button.
type formSection int

// fieldInput binds one draft field to its text input.
type fieldInput struct {
	field catalog.Field
	label string
	input textinput.Model
}

// formModel is one mounted create-or-edit form. The draft lives here; it
// is destroyed with the form and reset by the pipeline on a successful
// create.
type formModel struct {
	schema catalog.Schema
	draft  *catalog.Draft
	// editID is set when editing an existing entity.
	editID string
	// gen identifies this mount; async results tagged with an older gen
	// land after the form is gone and are discarded.
	gen int

	inputs      []fieldInput
	imagePath   textinput.Model
	sizeCursor  int
	colorCursor int
	focus       formSection

	result     catalog.Result
	submitting bool
	imageErr   string
	// gate discards preview loads superseded by a newer selection.
	gate imaging.SequenceGate
}

func newFormInput(label, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = label
	ti.CharLimit = 200
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

// newFormModel mounts a form for a schema, pre-filled from the draft
// (empty for create, DraftFromEntity for edit).
func newFormModel(schema catalog.Schema, draft *catalog.Draft, editID string, gen int) *formModel {
	f := &formModel{schema: schema, draft: draft, editID: editID, gen: gen}

	add := func(field catalog.Field, label, value string) {
		f.inputs = append(f.inputs, fieldInput{field: field, label: label, input: newFormInput(label, value)})
	}

	add(catalog.FieldName, "name", draft.Name)
	if schema.Has(catalog.FieldPrice) {
		add(catalog.FieldPrice, "price", draft.Price)
	}
	if schema.Has(catalog.FieldOldPrice) {
		add(catalog.FieldOldPrice, "old price", draft.OldPrice)
	}
	if schema.Has(catalog.FieldNewPrice) {
		add(catalog.FieldNewPrice, "new price", draft.NewPrice)
	}
	if schema.Has(catalog.FieldCategory) {
		add(catalog.FieldCategory, "category", draft.Category)
	}
	if schema.Has(catalog.FieldDescription) {
		add(catalog.FieldDescription, "description", draft.Description)
	}
	if schema.Has(catalog.FieldStock) {
		add(catalog.FieldStock, "stock", draft.Stock)
	}

	f.imagePath = newFormInput("image file path", "")
	f.setFocus(0)
	return f
}

func (f *formModel) sectionCount() int {
	// inputs + sizes + colors + image path + submit
	return len(f.inputs) + 4
}

func (f *formModel) sizesSection() formSection  { return formSection(len(f.inputs)) }
func (f *formModel) colorsSection() formSection { return f.sizesSection() + 1 }
func (f *formModel) imageSection() formSection  { return f.sizesSection() + 2 }
func (f *formModel) submitSection() formSection { return f.sizesSection() + 3 }

func (f *formModel) setFocus(s formSection) {
	if s < 0 {
		s = formSection(f.sectionCount() - 1)
	}
	if int(s) >= f.sectionCount() {
		s = 0
	}
	f.focus = s
	for i := range f.inputs {
		if formSection(i) == s {
			f.inputs[i].input.Focus()
		} else {
			f.inputs[i].input.Blur()
		}
	}
	if s == f.imageSection() {
		f.imagePath.Focus()
	} else {
		f.imagePath.Blur()
	}
}

// syncDraft copies the text inputs back into the draft. A corrective edit
// clears that field's error and nothing else.
func (f *formModel) syncDraft() {
	for i := range f.inputs {
		value := f.inputs[i].input.Value()
		field := f.inputs[i].field
		var dst *string
		switch field {
		case catalog.FieldName:
			dst = &f.draft.Name
		case catalog.FieldPrice:
			dst = &f.draft.Price
		case catalog.FieldOldPrice:
			dst = &f.draft.OldPrice
		case catalog.FieldNewPrice:
			dst = &f.draft.NewPrice
		case catalog.FieldCategory:
			dst = &f.draft.Category
		case catalog.FieldDescription:
			dst = &f.draft.Description
		case catalog.FieldStock:
			dst = &f.draft.Stock
		}
		if dst != nil && *dst != value {
			*dst = value
			f.result.Clear(field)
		}
	}
}

// previewLoadedMsg carries a resolved image selection back to the form.
type previewLoadedMsg struct {
	gen   int
	seq   uint64
	asset *imaging.Asset
	err   error
}

// loadImageCmd reads, accepts, eagerly compresses, and previews the file
// at path. Compression at selection time is the uniform policy; the
// upload later sends whatever asset the draft holds.
func (f *formModel) loadImageCmd(path string) tea.Cmd {
	gen := f.gen
	seq := f.gate.Begin()
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return previewLoadedMsg{gen: gen, seq: seq, err: err}
		}
		asset, err := imaging.Accept(filepath.Base(path), data, "", imaging.SourcePicker)
		if err != nil {
			return previewLoadedMsg{gen: gen, seq: seq, err: err}
		}
		compressed, err := imaging.Compress(asset)
		if err != nil {
			return previewLoadedMsg{gen: gen, seq: seq, err: err}
		}
		compressed.EncodePreview()
		return previewLoadedMsg{gen: gen, seq: seq, asset: compressed}
	}
}

// applyPreview applies a resolved load, discarding stale or post-unmount
// results.
func (f *formModel) applyPreview(msg previewLoadedMsg) {
	if msg.gen != f.gen || !f.gate.Accept(msg.seq) {
		return
	}
	if msg.err != nil {
		f.imageErr = msg.err.Error()
		return
	}
	f.imageErr = ""
	f.draft.SetImage(msg.asset)
	f.result.Clear(catalog.FieldImage)
}

// update handles one message while the form has focus. The second return
// is true when the form wants to close (esc).
func (f *formModel) update(msg tea.Msg) (tea.Cmd, bool) {
	if loaded, ok := msg.(previewLoadedMsg); ok {
		f.applyPreview(loaded)
		return nil, false
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return nil, true
		case "tab", "down":
			if f.focus < f.imageSection() || key.String() == "tab" {
				f.setFocus(f.focus + 1)
				return nil, false
			}
		case "shift+tab", "up":
			if f.focus > 0 || key.String() == "shift+tab" {
				f.setFocus(f.focus - 1)
				return nil, false
			}
		case "left":
			switch f.focus {
			case f.sizesSection():
				f.sizeCursor = chipMove(f.sizeCursor, -1, len(catalog.AvailableSizes))
				return nil, false
			case f.colorsSection():
				f.colorCursor = chipMove(f.colorCursor, -1, len(catalog.AvailableColors))
				return nil, false
			}
		case "right":
			switch f.focus {
			case f.sizesSection():
				f.sizeCursor = chipMove(f.sizeCursor, 1, len(catalog.AvailableSizes))
				return nil, false
			case f.colorsSection():
				f.colorCursor = chipMove(f.colorCursor, 1, len(catalog.AvailableColors))
				return nil, false
			}
		case " ":
			switch f.focus {
			case f.sizesSection():
				f.draft.Sizes.Toggle(catalog.AvailableSizes[f.sizeCursor])
				f.result.Clear(catalog.FieldSizes)
				return nil, false
			case f.colorsSection():
				f.draft.Colors.Toggle(catalog.AvailableColors[f.colorCursor])
				f.result.Clear(catalog.FieldColors)
				return nil, false
			}
		case "enter":
			switch f.focus {
			case f.imageSection():
				path := strings.TrimSpace(f.imagePath.Value())
				if path != "" {
					return f.loadImageCmd(path), false
				}
				return nil, false
			case f.submitSection():
				return f.submitRequested(), false
			default:
				f.setFocus(f.focus + 1)
				return nil, false
			}
		case "ctrl+d":
			if f.focus == f.imageSection() {
				f.draft.ClearImage()
				f.imagePath.SetValue("")
				return nil, false
			}
		}
	}

	// Route everything else to the focused input.
	var cmd tea.Cmd
	if int(f.focus) < len(f.inputs) {
		f.inputs[f.focus].input, cmd = f.inputs[f.focus].input.Update(msg)
		f.syncDraft()
	} else if f.focus == f.imageSection() {
		f.imagePath, cmd = f.imagePath.Update(msg)
	}
	return cmd, false
}

// submitRequested runs the collect-all validation pass and, when the
// draft is clean, marks the form busy. The caller issues the network
// command.
func (f *formModel) submitRequested() tea.Cmd {
	f.syncDraft()
	f.result = catalog.Validate(f.draft)
	if !f.result.IsValid() || f.submitting {
		return nil
	}
	f.submitting = true
	return func() tea.Msg { return submitRequestMsg{gen: f.gen} }
}

// submitRequestMsg asks the app to dispatch the form's draft.
type submitRequestMsg struct{ gen int }

func chipMove(cur, delta, n int) int {
	cur += delta
	if cur < 0 {
		return n - 1
	}
	if cur >= n {
		return 0
	}
	return cur
}

func (f *formModel) view() string {
	var b strings.Builder

	title := fmt.Sprintf("New %s", f.schema.Kind)
	if f.editID != "" {
		title = fmt.Sprintf("Edit %s", f.schema.Kind)
	}
	b.WriteString(styleHeader.Render(title) + "\n\n")

	for i := range f.inputs {
		in := f.inputs[i]
		b.WriteString(styleLabel.Render(in.label) + "\n")
		b.WriteString(in.input.View() + "\n")
		if msg := f.result.Error(in.field); msg != "" {
			b.WriteString(styleError.Render(msg) + "\n")
		}
	}

	// Live discount preview for offers, only while both prices hold up.
	if f.schema.Has(catalog.FieldNewPrice) {
		if d, ok := catalog.DraftDiscount(f.draft); ok {
			b.WriteString(styleOK.Render(fmt.Sprintf("discount: %d%%", d)) + "\n")
		}
	}

	b.WriteString("\n" + f.renderChips("sizes", catalog.AvailableSizes, &f.draft.Sizes, f.sizeCursor, f.focus == f.sizesSection()))
	if msg := f.result.Error(catalog.FieldSizes); msg != "" {
		b.WriteString(styleError.Render(msg) + "\n")
	}
	b.WriteString(f.renderChips("colors", catalog.AvailableColors, &f.draft.Colors, f.colorCursor, f.focus == f.colorsSection()))
	if msg := f.result.Error(catalog.FieldColors); msg != "" {
		b.WriteString(styleError.Render(msg) + "\n")
	}

	b.WriteString("\n" + styleLabel.Render("image") + "\n")
	b.WriteString(f.imagePath.View() + "\n")
	b.WriteString(f.renderImageStatus())
	if msg := f.result.Error(catalog.FieldImage); msg != "" {
		b.WriteString(styleError.Render(msg) + "\n")
	}

	submit := styleBtn.Render("submit")
	if f.focus == f.submitSection() {
		submit = styleBtnActive.Render("submit")
	}
	if f.submitting {
		submit = styleMuted.Render("submitting…")
	}
	b.WriteString("\n" + submit + "\n")

	b.WriteString("\n" + styleFooter.Render("tab: next field  space: toggle  enter: load image/submit  ctrl+d: remove image  esc: back"))
	return b.String()
}

func (f *formModel) renderChips(label string, choices []string, set *catalog.Set, cursor int, focused bool) string {
	var b strings.Builder
	b.WriteString(styleLabel.Render(label) + "\n")
	for i, choice := range choices {
		style := styleChip
		if set.Has(choice) {
			style = styleChipOn
		}
		if focused && i == cursor {
			style = styleChipCursor
		}
		b.WriteString(style.Render(choice))
	}
	b.WriteString("\n")
	return b.String()
}

func (f *formModel) renderImageStatus() string {
	if f.imageErr != "" {
		return styleError.Render(f.imageErr) + "\n"
	}
	if a := f.draft.Image; a != nil {
		return styleMuted.Render(fmt.Sprintf("%s  %.0f KB  %s", a.Filename, float64(a.SizeBytes)/1024, a.MIMEType)) + "\n"
	}
	if f.draft.PreviewURL != "" {
		return styleMuted.Render("stored image: "+f.draft.PreviewURL) + "\n"
	}
	return ""
}
