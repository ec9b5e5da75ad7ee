package insights

import (
	"fmt"
	"strconv"
	"time"
)

// ParseRequest builds a Request from raw query-string values. Anything that
// does not parse is rejected here, before any read.
func ParseRequest(scope, year, employee, from, to string) (Request, error) {
	req := Request{
		Scope: Scope(scope),
		From:  from,
		To:    to,
	}
	if scope == "" {
		req.Scope = ScopeGlobal
	}

	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return Request{}, fmt.Errorf("%w: bad year %q", ErrInvalidRequest, year)
		}
		req.Year = y
	} else if from == "" && to == "" {
		req.Year = time.Now().UTC().Year()
	}

	if employee != "" {
		id, err := strconv.ParseInt(employee, 10, 64)
		if err != nil {
			return Request{}, fmt.Errorf("%w: bad employee %q", ErrInvalidRequest, employee)
		}
		req.EmployeeID = id
	}

	if err := req.validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func ParseAlertRequest(scope, year, employee, from, to, limit string) (AlertRequest, error) {
	base, err := ParseRequest(scope, year, employee, from, to)
	if err != nil {
		return AlertRequest{}, err
	}

	req := AlertRequest{Request: base}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return AlertRequest{}, fmt.Errorf("%w: bad limit %q", ErrInvalidRequest, limit)
		}
		req.Limit = n
	}

	if err := req.validate(); err != nil {
		return AlertRequest{}, err
	}
	return req, nil
}
