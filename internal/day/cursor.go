package day

// StepBackward moves the cursor one day into the past. There is no lower
// bound.
func StepBackward(d Day) Day {
	return d.AddDays(-1)
}

// StepForward moves the cursor one day ahead unless that would land after
// today, in which case d is returned unchanged. The cursor never represents
// a future day.
func StepForward(d, today Day) Day {
	next := d.AddDays(1)
	if next.After(today) {
		return d
	}
	return next
}
