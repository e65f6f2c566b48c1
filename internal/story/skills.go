package story

// SkillType identifies a character skill.
type SkillType string

const (
	SkillCombat    SkillType = "combat"
	SkillAgility   SkillType = "agility"
	SkillCunning   SkillType = "cunning"
	SkillFolklore  SkillType = "folklore"
	SkillScouting  SkillType = "scouting"
	SkillSurvival  SkillType = "survival"
	SkillEloquence SkillType = "eloquence"
	SkillRoguery   SkillType = "roguery"
)

type skillInfo struct {
	name string

	// tools are the items that let the skill be exercised when a choice
	// doesn't name its own alternatives.
	tools []ItemType
}

var skills = map[SkillType]skillInfo{
	SkillCombat:    {name: "Combat", tools: []ItemType{ItemSword, ItemAxe}},
	SkillAgility:   {name: "Agility", tools: []ItemType{ItemRope}},
	SkillCunning:   {name: "Cunning"},
	SkillFolklore:  {name: "Folklore"},
	SkillScouting:  {name: "Scouting", tools: []ItemType{ItemTelescope, ItemCompass}},
	SkillSurvival:  {name: "Survival"},
	SkillEloquence: {name: "Eloquence", tools: []ItemType{ItemLuteStrings}},
	SkillRoguery:   {name: "Roguery", tools: []ItemType{ItemLockpicks}},
}

// Known reports whether the identifier names a registered skill.
func (s SkillType) Known() bool {
	_, ok := skills[s]
	return ok
}

// Name returns the skill's display name.
func (s SkillType) Name() string {
	if info, ok := skills[s]; ok {
		return info.name
	}
	return string(s)
}

// Tools returns the default qualifying items for the skill.
func (s SkillType) Tools() []ItemType {
	return skills[s].tools
}
