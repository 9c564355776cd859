/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package main

import (
	"log"
	"os"

	"github.com/hospital-core/hospitalload"
)

// serves token endpoint and api on one address, point both urls of the load generator here
func main() {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	hospitalload.RunDummyHospital(addr, hospitalload.NewDummyHospital(1000, 500))
	log.Printf("dummy hospital api on %s", addr)
	select {}
}
