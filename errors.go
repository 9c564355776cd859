/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package hospitalload

import (
	"errors"
)

var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrTokenRejected  = errors.New("token endpoint rejected credentials")
	ErrTokenConnect   = errors.New("token endpoint unreachable")
	ErrInitialToken   = errors.New("initial authentication failed")
	errStillForbidden = "unauthorized after token refresh"
)
