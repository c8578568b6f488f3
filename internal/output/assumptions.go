package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Energy prices and the prosumer surcharge escalate 5% per year",
	"Fixed fees (permitted power, supplier, subsidies) stay at today's level",
	"Surplus credit carries month to month and is cleared at the March settlement",
	"Evaluation horizon is 25 years with no panel degradation",
	"Self-consumption is capped at 40% of production and 60% of higher-tariff usage",
}
