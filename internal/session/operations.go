package session

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/internal/core"
	"expensetracker/internal/prompt"
)

var editChoices = []prompt.Choice{
	{Key: "c", Label: "category"},
	{Key: "a", Label: "amount"},
	{Key: "d", Label: "date"},
}

func (s *Session) addExpense(ctx context.Context) error {
	category, err := s.askCategory("\nEnter the index of the new expense category (1 - %d): ")
	if err != nil {
		return err
	}
	amount, err := s.p.PositiveAmount("\nEnter expense amount: ")
	if err != nil {
		return err
	}
	date, err := s.p.PastOrTodayDate("\nEnter expense date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	if _, err := s.svc.AddExpense(ctx, core.Expense{Amount: amount, Category: category, Date: date}); err != nil {
		return err
	}
	s.println("\nExpense added successfully")
	return nil
}

func (s *Session) editExpense(ctx context.Context) error {
	records, err := s.askMonthWithRecords(ctx)
	if err != nil {
		return err
	}
	s.printf("%-10s%-10s%-20s%-10s\n", "Index", "Amount", "Category", "Date")
	for i, r := range records {
		s.printf("%-10d%-10d%-20s%-10s\n", i+1, r.Amount, r.Category, r.Date)
	}

	index, err := s.p.BoundedInt("\nEnter the index of expense to edit: ", "index", 1, len(records))
	if err != nil {
		return err
	}
	rec := records[index-1]

	for {
		s.println("\nSelected expense details:")
		s.printf("Category: %s\n", rec.Category)
		s.printf("Amount: %d\n", rec.Amount)
		s.printf("Date: %s\n", rec.Date)

		choice, err := s.p.Choice("\nWould you like to edit the category, amount or date? (c / a / d) ", editChoices)
		if err != nil {
			return err
		}
		if err := s.editField(ctx, &rec, choice.Key); err != nil {
			return err
		}

		more, err := s.p.YesNo("\nDo you want to edit more parameters for this expense? (y/n) ")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (s *Session) editField(ctx context.Context, rec *core.Expense, key string) error {
	switch key {
	case "c":
		category, err := s.askCategory("\nEnter the index of the new expense category (1 - %d): ")
		if err != nil {
			return err
		}
		if err := s.svc.UpdateCategory(ctx, rec, category); err != nil {
			return err
		}
		s.println("Category updated successfully")
	case "a":
		amount, err := s.p.PositiveAmount("\nEnter new expense amount: ")
		if err != nil {
			return err
		}
		if err := s.svc.UpdateAmount(ctx, rec, amount); err != nil {
			return err
		}
		s.println("Amount updated successfully")
	case "d":
		date, err := s.p.PastOrTodayDate("\nEnter new expense date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		if err := s.svc.UpdateDate(ctx, rec, date); err != nil {
			return err
		}
		s.println("Date updated successfully")
	}
	return nil
}

// askMonthWithRecords asks for a year and month until the month has records.
func (s *Session) askMonthWithRecords(ctx context.Context) ([]core.Expense, error) {
	year, err := s.askYear("\nEnter year (1900 - %d): ")
	if err != nil {
		return nil, err
	}
	for {
		month, err := s.askMonth("\nEnter month: (1 - %d) ", year)
		if err != nil {
			return nil, err
		}
		period := core.MonthPeriod(year, month)
		records, err := s.svc.RecordsForPeriod(ctx, period)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			return records, nil
		}
		s.printf("There are no expenses for %s. Please select another year and month.\n", period.Label())
		if year, err = s.askYear("\nEnter year (1900 - %d): "); err != nil {
			return nil, err
		}
	}
}

func (s *Session) yearStatement(ctx context.Context) error {
	year, err := s.askYear("\nEnter year (1900 - %d): ")
	if err != nil {
		return err
	}
	agg, err := s.svc.YearStatement(ctx, year)
	if err != nil {
		return err
	}
	s.printStatement(fmt.Sprint(year), agg)
	return nil
}

func (s *Session) monthStatement(ctx context.Context) error {
	year, err := s.askYear("\nEnter year (1900 - %d): ")
	if err != nil {
		return err
	}
	month, err := s.askMonth("\nEnter month: (1 - %d) ", year)
	if err != nil {
		return err
	}
	agg, err := s.svc.MonthStatement(ctx, year, month)
	if err != nil {
		return err
	}
	s.printStatement(fmt.Sprintf("%d/%d", month, year), agg)
	return nil
}

func (s *Session) printStatement(label string, agg core.Aggregate) {
	s.printf("\nTotal expenses for all categories in %s: $%d\n\n", label, agg.Total)
	for _, ca := range agg.ByCategory {
		s.printf("%s: $%d\n", ca.Category, ca.Amount)
		s.println()
	}
}

func (s *Session) compareYears(ctx context.Context) error {
	first, err := s.askYear("\nEnter first year to compare (1900 - %d): ")
	if err != nil {
		return err
	}
	s.printf("\nFirst year to compare: %d\n", first)

	current := s.today().Year()
	second, err := prompt.Ask(s.p, fmt.Sprintf("Enter second year to compare (1900 - %d): ", current),
		func(in string) (int, error) {
			y, err := prompt.BoundedInt("year", minYear, current)(in)
			if errors.Is(err, prompt.ErrEmpty) {
				return 0, err
			}
			if err != nil || y == first {
				return 0, prompt.Invalid("Invalid year. Please enter a different number between 1900 and %d, excluding %d", current, first)
			}
			return y, nil
		})
	if err != nil {
		return err
	}
	s.printf("\nSecond year to compare: %d\n", second)

	pc, err := s.svc.CompareYears(ctx, first, second)
	if err != nil {
		return err
	}
	if pc.FirstAgg.Empty() || pc.SecondAgg.Empty() {
		s.println("\nOne or both of the years are not in the expenses data")
		return nil
	}

	s.printf("\nTotal expenses in %d: $%d\n", first, pc.FirstAgg.Total)
	s.printf("Total expenses in %d: $%d\n\n", second, pc.SecondAgg.Total)
	c := pc.Comparison
	switch {
	case c.Undefined:
		s.printf("There were no expenses in %d.\n\n", first)
	case c.Diff > 0:
		s.printf("%d is lower than %d by %s%%\n\n", first, second, c.PercentString())
	case c.Diff < 0:
		s.printf("%d is lower than %d by %s%%\n\n", second, first, c.PercentString())
	default:
		s.println("Total expenses are the same in both years")
		s.println()
	}

	for _, side := range []struct {
		year int
		agg  core.Aggregate
	}{{first, pc.FirstAgg}, {second, pc.SecondAgg}} {
		s.printf("\nExpenses by category in %d:\n", side.year)
		for _, ca := range side.agg.ByCategory {
			s.printf("%s: $%d\n", ca.Category, ca.Amount)
		}
	}
	return nil
}

func (s *Session) compareMonths(ctx context.Context) error {
	year1, err := s.askYear("\nEnter year for first date (1900 - %d): ")
	if err != nil {
		return err
	}
	month1, err := s.askMonth("\nEnter month for first date (1 - %d) ", year1)
	if err != nil {
		return err
	}
	first := core.MonthPeriod(year1, month1)
	s.printf("\nFirst date to compare: %s\n", first)

	year2, err := s.askYear("\nEnter year for second date (1900 - %d): ")
	if err != nil {
		return err
	}
	maxMonth := core.MaxMonth(year2, s.today())
	month2, err := prompt.Ask(s.p, fmt.Sprintf("\nEnter month for second date (1 - %d) ", maxMonth),
		func(in string) (int, error) {
			m, err := prompt.BoundedInt("month", 1, maxMonth)(in)
			if errors.Is(err, prompt.ErrEmpty) {
				return 0, err
			}
			if err != nil || core.MonthPeriod(year2, m) == first {
				return 0, prompt.Invalid("Invalid month. Please enter a number between 1 and %d, exclude %s you picked in the first date.", maxMonth, first)
			}
			return m, nil
		})
	if err != nil {
		return err
	}
	second := core.MonthPeriod(year2, month2)
	s.printf("\nSecond date to compare: %s\n", second)

	mc, err := s.svc.CompareMonths(ctx, first, second)
	if err != nil {
		return err
	}
	for slot, p := range mc.Periods {
		s.printf("\nTotal expenses for %s: $%d\n\n", p, mc.Totals[slot])
		for _, pair := range mc.ByCategory {
			s.printf("%s: $%d\n", pair.Category, pair.Amounts[slot])
		}
	}

	c := mc.Comparison
	switch {
	case c.Undefined:
		s.println("\nThere were no expenses in the first month.")
	case c.Diff > 0:
		s.printf("\nExpenses were lower in %s by $%d (%s%%)\n", first, c.Diff, c.PercentString())
	case c.Diff < 0:
		s.printf("\nExpenses were lower in %s by $%d (%s%%)\n", second, -c.Diff, c.PercentString())
	default:
		s.println("\nExpenses were the same in both months")
	}
	return nil
}

func (s *Session) askCategory(format string) (core.Category, error) {
	s.println()
	s.printf("%-6s%-15s\n", "Index", "Category")
	for i, c := range s.categories {
		s.printf("%-6d%-15s\n", i+1, c)
	}
	index, err := s.p.BoundedInt(fmt.Sprintf(format, len(s.categories)), "index", 1, len(s.categories))
	if err != nil {
		return "", err
	}
	return s.categories[index-1], nil
}

func (s *Session) askYear(format string) (int, error) {
	current := s.today().Year()
	return s.p.BoundedInt(fmt.Sprintf(format, current), "year", minYear, current)
}

func (s *Session) askMonth(format string, year int) (int, error) {
	maxMonth := core.MaxMonth(year, s.today())
	return s.p.BoundedInt(fmt.Sprintf(format, maxMonth), "month", 1, maxMonth)
}
