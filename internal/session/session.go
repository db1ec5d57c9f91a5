// Package session drives the interactive menu of the expense tracker.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/prompt"
)

const minYear = 1900

// Service is the set of expense operations the menu needs.
type Service interface {
	AddExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	RecordsForPeriod(ctx context.Context, p core.Period) ([]core.Expense, error)
	UpdateCategory(ctx context.Context, e *core.Expense, c core.Category) error
	UpdateAmount(ctx context.Context, e *core.Expense, amount int64) error
	UpdateDate(ctx context.Context, e *core.Expense, d core.Date) error
	YearStatement(ctx context.Context, year int) (core.Aggregate, error)
	MonthStatement(ctx context.Context, year, month int) (core.Aggregate, error)
	CompareYears(ctx context.Context, first, second int) (core.PeriodComparison, error)
	CompareMonths(ctx context.Context, first, second core.Period) (core.MonthComparison, error)
}

type Config struct {
	Service    Service
	Categories []core.Category
	In         io.Reader
	Out        io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
	// ExitPause is slept twice while exiting.
	ExitPause time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

type Session struct {
	svc        Service
	categories []core.Category
	p          *prompt.Prompter
	out        io.Writer
	now        func() time.Time
	exitPause  time.Duration
	sleep      func(time.Duration)
	ops        map[State]func(context.Context) error
}

func New(cfg Config) *Session {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	s := &Session{
		svc:        cfg.Service,
		categories: append([]core.Category(nil), cfg.Categories...),
		p:          prompt.New(cfg.In, cfg.Out, cfg.Now),
		out:        cfg.Out,
		now:        cfg.Now,
		exitPause:  cfg.ExitPause,
		sleep:      cfg.Sleep,
	}
	s.ops = map[State]func(context.Context) error{
		Adding:          s.addExpense,
		Editing:         s.editExpense,
		ViewingYear:     s.yearStatement,
		ViewingMonth:    s.monthStatement,
		ComparingYears:  s.compareYears,
		ComparingMonths: s.compareMonths,
	}
	return s
}

// Run loops until the user quits. A closed input ends the session quietly;
// store failures are returned.
func (s *Session) Run(ctx context.Context) error {
	state := Menu
	for state != Exiting {
		next, err := s.step(ctx, state)
		if errors.Is(err, prompt.ErrInputClosed) {
			slog.DebugContext(ctx, "Input closed, leaving session", "state", state)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", state, err)
		}
		state = next
	}
	s.exit()
	return nil
}

func (s *Session) step(ctx context.Context, state State) (State, error) {
	if state == Menu {
		return s.menu()
	}
	op, ok := s.ops[state]
	if !ok {
		return Menu, fmt.Errorf("no operation for state %d", state)
	}
	if err := op(ctx); err != nil {
		return state, err
	}
	again, err := s.p.YesNo(againQuestions[state])
	if err != nil {
		return state, err
	}
	if again {
		return state, nil
	}
	return Menu, nil
}

func (s *Session) menu() (State, error) {
	s.println("Welcome to the Personal Expense Tracker!")
	s.println("\n===== MENU ======")
	s.println("\nPlease select an option:")
	s.println("1. Add an expense")
	s.println("2. Edit an expense")
	s.println("3. View expenses by year")
	s.println("4. View expenses by month")
	s.println("5. Compare expenses by year")
	s.println("6. Compare expenses by month")
	s.println("7. Quit")

	choice, err := s.p.Line("\nEnter your choice (1-7): ")
	if err != nil {
		return Menu, err
	}
	next, ok := menuChoices[choice]
	if !ok {
		s.println("Invalid choice. Please enter a number from 1 to 7.")
		return Menu, nil
	}
	return next, nil
}

func (s *Session) exit() {
	s.println("\nGoodbye!")
	s.sleep(s.exitPause)
	s.println("\nExiting program...")
	s.sleep(s.exitPause)
}

func (s *Session) today() core.Date {
	return core.Today(s.now())
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
