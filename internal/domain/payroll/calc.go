package payroll

// NetSalary applies the suite's flat formula. The store never recomputes it;
// the value persisted is whatever the caller supplies.
func NetSalary(basic, allowances, deductions float64) float64 {
	return basic + allowances - deductions
}
