package main_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExpenseApproval(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ExpenseApproval Suite")
}
