// Package services provides domain services for rules that span more than one
// aggregate or model in the ordering system.
//
// The package includes:
//   - WholesaleRuleEvaluator: checks a resolved cart against the active wholesale rules
package services
