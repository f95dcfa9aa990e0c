package clinical

import (
	"strings"
	"testing"

	"github.com/dval/hmis/pkg/pagination"
)

func TestListRecordsQuery(t *testing.T) {
	doctor := int64(3)
	sql, args, err := listRecordsQuery(9, RecordFilter{DoctorID: &doctor, Day: "2024-01-31"}, pagination.Params{Limit: 20}).ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, frag := range []string{`FROM "medicalrecords"`, `"hospital_id" = $1`, `"doctor_id" = $2`, `DATE("record_date") = $3::date`, `LIMIT $4`} {
		if !strings.Contains(sql, frag) {
			t.Errorf("expected %q in %s", frag, sql)
		}
	}
	if len(args) != 4 || args[0] != int64(9) {
		t.Errorf("unexpected args %v", args)
	}
}
