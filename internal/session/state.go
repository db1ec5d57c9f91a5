package session

// State is a node of the interactive menu state machine.
type State int

const (
	Menu State = iota
	Adding
	Editing
	ViewingYear
	ViewingMonth
	ComparingYears
	ComparingMonths
	Exiting
)

var stateNames = map[State]string{
	Menu:            "menu",
	Adding:          "adding",
	Editing:         "editing",
	ViewingYear:     "viewing_year",
	ViewingMonth:    "viewing_month",
	ComparingYears:  "comparing_years",
	ComparingMonths: "comparing_months",
	Exiting:         "exiting",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// menuChoices maps the menu input to the state it selects.
var menuChoices = map[string]State{
	"1": Adding,
	"2": Editing,
	"3": ViewingYear,
	"4": ViewingMonth,
	"5": ComparingYears,
	"6": ComparingMonths,
	"7": Exiting,
}

// againQuestions is asked after an operation completes; yes repeats it.
var againQuestions = map[State]string{
	Adding:          "\nDo you want to add another expense? (y/n) ",
	Editing:         "\nDo you want to edit another expense? (y/n) ",
	ViewingYear:     "\nDo you want to see another year statement? (y/n) ",
	ViewingMonth:    "\nDo you want to see another month statement? (y/n) ",
	ComparingYears:  "\nDo you want to compare other years? (y/n) ",
	ComparingMonths: "\nDo you want to compare other months? (y/n) ",
}
