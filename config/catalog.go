package config

// Shop item kinds.
const (
	ItemKindTheme      = "theme"
	ItemKindConsumable = "consumable"
)

// Well-known shop item identifiers. Theme identifiers share the "theme_"
// prefix; only those may be equipped.
const (
	ItemThemeDefault = "theme_default"
	ItemMysteryBox   = "mystery_box"
	ItemFocusPotion  = "focus_potion"

	ThemeIDPrefix = "theme_"
)

// ShopItem is a static catalog entry. Items are immutable reference data and
// are not persisted; ownership lives in the profile inventory.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	CSSClass    string `json:"css_class"`
}

// ShopCatalog is the full set of purchasable items.
var ShopCatalog = []ShopItem{
	{ID: ItemThemeDefault, Name: "Default Theme", Kind: ItemKindTheme, Price: 0, Description: "Back to the original look.", CSSClass: ""},
	{ID: "theme_matrix", Name: "Matrix Mode", Kind: ItemKindTheme, Price: 50, Description: "Green-on-black hacker look.", CSSClass: "theme_matrix"},
	{ID: "theme_crimson", Name: "Crimson Protocol", Kind: ItemKindTheme, Price: 100, Description: "Aggressive red and gold look.", CSSClass: "theme_crimson"},
	{ID: "theme_ice", Name: "Ice Glitch", Kind: ItemKindTheme, Price: 150, Description: "Futuristic blue and cyan look.", CSSClass: "theme_ice"},
	{ID: "theme_zen", Name: "Zen Mode", Kind: ItemKindTheme, Price: 75, Description: "Minimalist. Pure focus.", CSSClass: "theme_zen"},
	{ID: ItemMysteryBox, Name: "Mystery Box", Kind: ItemKindConsumable, Price: 50, Description: "May contain 0 or 200 coins!", CSSClass: ""},
	{ID: ItemFocusPotion, Name: "Focus Potion", Kind: ItemKindConsumable, Price: 150, Description: "Grants 100 XP instantly!", CSSClass: ""},
}

// FindShopItem looks an item up by identifier.
func FindShopItem(id string) (ShopItem, bool) {
	for _, item := range ShopCatalog {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
