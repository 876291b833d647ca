package postgres

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"pulse-ads/internal/core/domain"
)

func TestDemographicsCaseLabelsMatchAgeBuckets(t *testing.T) {
	// one representative age per bucket, including boundaries
	for _, age := range []int{0, 17, 18, 24, 25, 34, 35, 44, 45, 54, 55, 90} {
		label := domain.AgeBucket(age)
		assert.Contains(t, clientDemographicsSQL, fmt.Sprintf("'%s'", label),
			"age %d bucket %q missing from the CASE expression", age, label)
	}
}
