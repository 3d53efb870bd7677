package extract

// Workbook layout. Coordinates are 0-indexed and fixed by the workbook's
// maintainers; sheets are addressed by name, cells by position or by marker
// text where the column moves between revisions.
const (
	SheetDash     = "Information to feed dash"
	SheetSeven    = "Sheet7"
	SheetTables   = "Tabelas"
	SheetAccounts = "Lista contas"
)

// Sheet7: bank name / amount pairs consumed by the position sync.
const (
	positionFirstRow = 77
	positionLastRow  = 90
	positionNameCol  = 1
	positionValueCol = 2
)

// Tabelas: the ranked bank list and the raw total liquidity cell.
const (
	bankListFirstRow = 78
	bankListLastRow  = 90
	bankListNameCol  = 1
	bankListValueCol = 2

	totalLiquidityRow = 91
	totalLiquidityCol = 2

	exposureHeaderRow = 0
	exposureFirstCol  = 1
	exposureLastCol   = 14
	exposureFirstBank = 1
	exposureLastBank  = 13
)

// Information to feed dash: two 12-month windows, current and prior year.
const (
	forecastLabelRow   = 2
	forecastNetRow     = 4
	forecastInflowRow  = 5
	forecastOutflowRow = 6

	forecastCurrentCol = 1
	forecastPriorCol   = 15
	forecastMonths     = 12
)

// Lista contas: marker-located liquidity series plus two fixed scan rows.
const (
	accountsFirstRow = 2
	accountsLastRow  = 97

	liquidityHeaderRow = 1
	liquidityDateRow   = 0
	liquidityDateBack  = -2
	liquidityValueRow  = 98
	liquidityWindow    = 30

	dailyFlowRow = 100
	dailyPctRow  = 101
)
