/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"fmt"
)

const (
	summaryHeader      = "\n--- LOAD TEST COMPLETE ---\n"
	summarySearch      = "Search Requests (Missing Index Test): %d\n"
	summaryAppointment = "Appointment Requests (N+1 Test):      %d\n"
	summaryErrors      = "Total Errors:                         %d\n"
)

func (r *Runner) printSummary(s Summary) {
	fmt.Fprint(r.out, summaryHeader)
	fmt.Fprintf(r.out, summarySearch, s.SearchHits)
	fmt.Fprintf(r.out, summaryAppointment, s.AppointmentHits)
	fmt.Fprintf(r.out, summaryErrors, s.Errors)
}
