package estimator

type referenceEngine struct{}

// New creates an Engine using the fixed reference constants.
func New() Engine {
	return &referenceEngine{}
}

func (e *referenceEngine) Estimate(snapshot Snapshot) Results {
	return Estimate(snapshot)
}

// Estimate runs every calculator over the snapshot.
func Estimate(snapshot Snapshot) Results {
	return Results{
		CostSavings:         ComputeSavings(snapshot),
		EnvironmentalImpact: ComputeEnvironmentalImpact(snapshot),
		OperationalBenefits: OperationalBenefitsReference(),
	}
}
