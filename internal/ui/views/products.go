package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/models"
	"github.com/tgienger/crmdash/internal/store"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

// Product form field order
const (
	productName = iota
	productDescription
	productPrice
	productCategory
	productStock
	productImage
	productStatus
)

// ProductsView lists the catalog and edits it through the product service
type ProductsView struct {
	products *store.ProductStore
	styles   *styles.Styles
	keys     keys.KeyMap
	table    table.Model
	spinner  spinner.Model

	width  int
	height int

	rows        []models.Product // products behind the table rows
	loaded      bool
	searching   bool
	searchInput textinput.Model

	// Create/edit form
	editing   bool
	editingID string // empty when creating
	form      *form

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	notice        string
	showHelpPopup bool
}

// productsDoneMsg reports the end of a product service call
type productsDoneMsg struct {
	op  string
	err error
}

// NewProductsView creates the products page
func NewProductsView(products *store.ProductStore) *ProductsView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search by name or category..."
	search.CharLimit = 100

	t := table.New(
		table.WithColumns(productColumns(styles.MaxWidth)),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Current.Border).
		BorderBottom(true).
		Foreground(styles.Current.Primary).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Current.Primary).
		Background(styles.Current.Selection).
		Bold(true)
	t.SetStyles(ts)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Current.Primary)

	price := newTextField("Price", "0.00", 12)
	price.required = true
	stock := newTextField("Stock", "0", 9)
	stock.required = true
	name := newTextField("Name", "Product name", 200)
	name.required = true
	category := newTextField("Category", "e.g. beauty", 100)
	category.required = true

	f := newForm("New Product", "Save",
		name,
		newTextField("Description", "Description", 1000),
		price,
		category,
		stock,
		newTextField("Image URL", "https://...", 500),
		newChoiceField("Status", []string{string(models.ProductActive), string(models.ProductInactive)}),
	)

	return &ProductsView{
		products:    products,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		table:       t,
		spinner:     sp,
		searchInput: search,
		form:        f,
	}
}

func productColumns(width int) []table.Column {
	// Fixed columns take 44 cells; the name column gets the rest
	nameWidth := max(width-44-12, 12)
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: nameWidth},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 6},
		{Title: "Status", Width: 9},
	}
}

// Init fetches the catalog the first time the page is shown
func (v *ProductsView) Init() tea.Cmd {
	if v.loaded {
		v.refreshRows()
		return nil
	}
	return tea.Batch(v.fetch(), v.spinner.Tick)
}

// Capturing reports whether a text input owns the keyboard
func (v *ProductsView) Capturing() bool {
	return v.editing || v.searching || v.confirmingDelete
}

func (v *ProductsView) fetch() tea.Cmd {
	products := v.products
	return func() tea.Msg {
		return productsDoneMsg{op: "load", err: products.FetchAll(context.Background())}
	}
}

func (v *ProductsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.table.SetColumns(productColumns(contentWidth))
		v.table.SetWidth(contentWidth - 2)
		v.table.SetHeight(max(msg.Height-12, 3))
		return v, nil

	case spinner.TickMsg:
		if !v.products.State().Loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case productsDoneMsg:
		if msg.op == "load" {
			v.loaded = true
		}
		if msg.err == nil {
			switch msg.op {
			case "add":
				v.notice = "Product created"
			case "update":
				v.notice = "Product updated"
			case "delete":
				v.notice = "Product deleted"
			}
		}
		v.refreshRows()
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *ProductsView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Back):
		if v.searchInput.Value() != "" {
			v.searchInput.Reset()
			v.refreshRows()
		}
		return v, nil

	case key.Matches(msg, v.keys.Refresh):
		v.notice = ""
		return v, tea.Batch(v.fetch(), v.spinner.Tick)

	case key.Matches(msg, v.keys.New):
		v.startEdit(nil)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if p, ok := v.selected(); ok {
			v.startEdit(&p)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if p, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = p.ID
			v.deleteTargetName = p.Name
		}
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *ProductsView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.searching = false
		v.searchInput.Blur()
		v.searchInput.Reset()
		v.refreshRows()
		return v, nil
	case key.Matches(msg, v.keys.Enter), msg.String() == "down":
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.refreshRows()
	return v, cmd
}

func (v *ProductsView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		products, id := v.products, v.deleteTargetID
		return v, tea.Batch(func() tea.Msg {
			return productsDoneMsg{op: "delete", err: products.Delete(context.Background(), id)}
		}, v.spinner.Tick)
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *ProductsView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Cancel) {
		v.editing = false
		return v, nil
	}

	submitted, cmd := v.form.update(msg)
	if !submitted {
		return v, cmd
	}

	product, err := v.productFromForm()
	if err != nil {
		v.form.err = err.Error()
		return v, nil
	}

	v.editing = false
	v.notice = ""
	products, id := v.products, v.editingID
	var call tea.Cmd
	if id == "" {
		call = func() tea.Msg {
			_, err := products.Add(context.Background(), product)
			return productsDoneMsg{op: "add", err: err}
		}
	} else {
		call = func() tea.Msg {
			_, err := products.Update(context.Background(), id, product)
			return productsDoneMsg{op: "update", err: err}
		}
	}
	return v, tea.Batch(call, v.spinner.Tick)
}

func (v *ProductsView) startEdit(p *models.Product) {
	v.editing = true
	v.form.reset()
	if p == nil {
		v.editingID = ""
		v.form.title = "New Product"
		return
	}

	v.editingID = p.ID
	v.form.title = "Edit Product"
	v.form.set(productName, p.Name)
	v.form.set(productDescription, p.Description)
	v.form.set(productPrice, strconv.FormatFloat(p.Price, 'f', 2, 64))
	v.form.set(productCategory, p.Category)
	v.form.set(productStock, strconv.Itoa(p.Stock))
	v.form.set(productImage, p.Image)
	v.form.set(productStatus, string(p.Status))
}

func (v *ProductsView) productFromForm() (models.Product, error) {
	if label := v.form.missing(); label != "" {
		return models.Product{}, fmt.Errorf("%s is required", label)
	}

	price, err := strconv.ParseFloat(v.form.value(productPrice), 64)
	if err != nil || price < 0 {
		return models.Product{}, fmt.Errorf("price must be a non-negative number")
	}
	stock, err := strconv.Atoi(v.form.value(productStock))
	if err != nil || stock < 0 {
		return models.Product{}, fmt.Errorf("stock must be a non-negative whole number")
	}

	return models.Product{
		Name:        v.form.value(productName),
		Description: v.form.value(productDescription),
		Price:       price,
		Category:    v.form.value(productCategory),
		Stock:       stock,
		Image:       v.form.value(productImage),
		Status:      models.ProductStatus(v.form.value(productStatus)),
	}, nil
}

func (v *ProductsView) selected() (models.Product, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.rows) {
		return models.Product{}, false
	}
	return v.rows[i], true
}

// refreshRows rebuilds the table from the store, applying the search
func (v *ProductsView) refreshRows() {
	search := strings.ToLower(strings.TrimSpace(v.searchInput.Value()))

	v.rows = v.rows[:0]
	var rows []table.Row
	for _, p := range v.products.State().Items {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		v.rows = append(v.rows, p)
		rows = append(rows, table.Row{
			p.ID,
			p.Name,
			p.Category,
			money(p.Price),
			strconv.Itoa(p.Stock),
			string(p.Status),
		})
	}
	v.table.SetRows(rows)
	if v.table.Cursor() >= len(rows) {
		v.table.SetCursor(max(0, len(rows)-1))
	}
}

// View renders the view
func (v *ProductsView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height,
			v.keys.Up, v.keys.Down, v.keys.New, v.keys.Edit, v.keys.Delete,
			v.keys.Search, v.keys.Refresh, v.keys.Back)
	}
	if v.confirmingDelete {
		return renderConfirm(v.styles, v.width, v.height, "Delete Product?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName))
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	if v.editing {
		centered := lipgloss.Place(contentWidth, v.height,
			lipgloss.Center, lipgloss.Center,
			v.form.view(s, contentWidth, v.height),
		)
		return styles.CenterView(centered, v.width, v.height)
	}

	st := v.products.State()

	searchStyle := s.FilterBar
	if v.searching {
		searchStyle = searchStyle.BorderForeground(styles.Current.BorderFocus)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Title.Render("Products"),
		"  ",
		searchStyle.Width(clamp(contentWidth-16, 20, 50)).Render(v.searchInput.View()),
	)

	status := s.StatusBar.Render(fmt.Sprintf("%d of %d products", len(v.rows), len(st.Items)))
	switch {
	case st.Loading:
		status = s.StatusBar.Render(v.spinner.View() + " Loading...")
	case st.Err != "":
		status = s.Error.Render("Error: " + st.Err)
	case v.notice != "":
		status = s.Success.Render(v.notice)
	}

	var body string
	if v.loaded && len(v.rows) == 0 {
		body = s.TitleMuted.Render("No products. Press 'n' to create one.")
	} else {
		body = v.table.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		status,
		renderHelp(s, contentWidth,
			v.keys.New, v.keys.Edit, v.keys.Delete, v.keys.Search, v.keys.Refresh),
	)
	return styles.CenterView(content, v.width, v.height)
}
