package identity

import (
	"strings"
	"testing"

	"github.com/dval/hmis/pkg/pagination"
)

func TestListPatientsQuery(t *testing.T) {
	age := 34
	sql, args, err := listPatientsQuery(5, PatientFilter{Name: "jan", Gender: "Female", Age: &age}, pagination.Params{Limit: 10}).ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, frag := range []string{
		`FROM "patients"`,
		`"hospital_id" = $1`,
		`"first_name" ILIKE $2`,
		`"last_name" ILIKE $3`,
		`"gender" = $4`,
		`EXTRACT(YEAR FROM age(date_of_birth)) = $5`,
		`ORDER BY "patient_id" ASC`,
		`LIMIT $6`,
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("expected %q in %s", frag, sql)
		}
	}
	if len(args) != 6 || args[0] != int64(5) || args[1] != "%jan%" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestListPatientsQuery_Unfiltered(t *testing.T) {
	sql, args, err := listPatientsQuery(1, PatientFilter{}, pagination.Params{}).ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(sql, "LIMIT") || len(args) != 1 {
		t.Errorf("expected only the hospital filter, got %s %v", sql, args)
	}
}
