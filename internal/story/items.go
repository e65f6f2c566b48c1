package story

// ItemType identifies a kind of item a character can carry.
type ItemType string

const (
	ItemSword       ItemType = "sword"
	ItemAxe         ItemType = "axe"
	ItemLantern     ItemType = "lantern"
	ItemRope        ItemType = "rope"
	ItemLockpicks   ItemType = "lockpicks"
	ItemTelescope   ItemType = "telescope"
	ItemCompass     ItemType = "compass"
	ItemAmulet      ItemType = "amulet"
	ItemCrystalBall ItemType = "crystal-ball"
	ItemHolySymbol  ItemType = "holy-symbol"
	ItemFurCloak    ItemType = "fur-cloak"
	ItemLuteStrings ItemType = "lute"
	ItemProvisions  ItemType = "provisions"
	ItemDriedFish   ItemType = "dried-fish"
	ItemHardtack    ItemType = "hardtack"
	ItemWaterskin   ItemType = "waterskin"
)

type itemInfo struct {
	name   string
	edible bool
}

var items = map[ItemType]itemInfo{
	ItemSword:       {name: "Sword"},
	ItemAxe:         {name: "Axe"},
	ItemLantern:     {name: "Lantern"},
	ItemRope:        {name: "Coil of Rope"},
	ItemLockpicks:   {name: "Lockpicks"},
	ItemTelescope:   {name: "Telescope"},
	ItemCompass:     {name: "Compass"},
	ItemAmulet:      {name: "Amulet"},
	ItemCrystalBall: {name: "Crystal Ball"},
	ItemHolySymbol:  {name: "Holy Symbol"},
	ItemFurCloak:    {name: "Fur Cloak"},
	ItemLuteStrings: {name: "Lute"},
	ItemProvisions:  {name: "Provisions", edible: true},
	ItemDriedFish:   {name: "Dried Fish", edible: true},
	ItemHardtack:    {name: "Hardtack", edible: true},
	ItemWaterskin:   {name: "Waterskin"},
}

// Known reports whether the identifier names a registered item.
func (i ItemType) Known() bool {
	_, ok := items[i]
	return ok
}

// Name returns the item's display name, or the raw identifier for
// unregistered items so content bugs stay visible on screen.
func (i ItemType) Name() string {
	if info, ok := items[i]; ok {
		return info.name
	}
	return string(i)
}

// Edible reports whether the item counts as a provision for EAT choices.
func (i ItemType) Edible() bool {
	return items[i].edible
}
