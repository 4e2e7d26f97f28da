package domain

// MenuItem is the catalog's view of a dish. The cart never keeps a live
// reference to it: every CartItem embeds a copy taken at add time, so a later
// catalog change only reaches the cart through an explicit refresh (the
// reorder availability check).
type MenuItem struct {
	ID             string
	RestaurantID   string
	Name           string
	Description    string
	Price          float64
	Category       string
	ImageURL       string
	IsAvailable    bool
	Customizations []Customization
}

// Customization is one group of selectable options, e.g. "Size" or "Toppings".
type Customization struct {
	ID         string
	Name       string
	Required   bool
	MaxChoices int
	Options    []CustomizationOption
}

// CustomizationOption carries the price delta added to the base price when
// the option is selected.
type CustomizationOption struct {
	ID    string
	Name  string
	Price float64
}

// Option returns the option definition with the given id, if the group has it.
func (c Customization) Option(optionID string) (CustomizationOption, bool) {
	for _, opt := range c.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return CustomizationOption{}, false
}

// CustomizationByID returns the customization group with the given id.
func (m MenuItem) CustomizationByID(customizationID string) (Customization, bool) {
	for _, c := range m.Customizations {
		if c.ID == customizationID {
			return c, true
		}
	}
	return Customization{}, false
}
