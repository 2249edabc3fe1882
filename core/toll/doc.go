// Package toll aggregates the crossings of one vehicle on one day into a
// bounded daily congestion fee.
//
// Passes are sorted, checked against the exemption rules, grouped into
// charge windows of up to one hour from the window's first pass, and each
// window contributes the highest fee among its passes. The sum is capped at
// DailyMaximumFee.
package toll
