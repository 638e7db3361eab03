package battle

import "github.com/sgtnasty/battlers/internal/game/dice"

// ResolveAttack rolls 1d20 for attacker against target's defense.
// The attack lands iff attack bonus + roll >= Defense.Curr; ties favor the
// attacker.
//
// Precondition: attacker, target, and src must be non-nil.
func ResolveAttack(attacker, target *Combatant, src dice.Source) bool {
	roll := dice.Roll1d20(src)
	return attacker.Attack.Bonus()+roll >= target.Defense.Curr
}

// ResolveDamage rolls 1d8 + attacker's power bonus and applies the result to
// target's armor. Amounts below 1 apply nothing and return 0: a power
// penalty can fully negate an otherwise-landed hit.
//
// Precondition: attacker, target, and src must be non-nil.
// Postcondition: return value >= 0; target.Armor.Curr reduced by exactly the
// returned amount.
func ResolveDamage(attacker, target *Combatant, src dice.Source) int {
	amount := dice.Roll1d8(src) + attacker.Power.Bonus()
	if amount < 1 {
		return 0
	}
	target.Armor.Curr -= amount
	return amount
}
