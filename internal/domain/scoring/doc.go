// Package scoring grades test submissions against per-section answer keys.
//
// Multiple-choice items earn one point on an exact match. Free-response items
// marked ManualGradingRequired earn FreeResponseCredit when the response is
// not blank. The total is expressed as a percentage of the key's size,
// rounded to one decimal place.
package scoring
