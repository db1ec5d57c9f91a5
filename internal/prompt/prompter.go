package prompt

import "expensetracker/internal/core"

func (p *Prompter) BoundedInt(text, label string, min, max int) (int, error) {
	return Ask(p, text, BoundedInt(label, min, max))
}

// PositiveAmount asks for an amount, rounded half-to-even to whole units.
func (p *Prompter) PositiveAmount(text string) (int64, error) {
	return Ask(p, text, Amount)
}

// PastOrTodayDate reads the clock each time an answer is checked.
func (p *Prompter) PastOrTodayDate(text string) (core.Date, error) {
	return Ask(p, text, PastOrToday(func() core.Date { return core.Today(p.now()) }))
}

func (p *Prompter) Choice(text string, choices []Choice) (Choice, error) {
	return Ask(p, text, OneOf(choices))
}

func (p *Prompter) YesNo(text string) (bool, error) {
	c, err := p.Choice(text, YesNoChoices)
	if err != nil {
		return false, err
	}
	return c.Key == "y", nil
}
