package user_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockUserRepository struct {
	users  map[int64]*user.User
	emails map[string]bool
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*user.User),
		emails: make(map[string]bool),
		nextID: 1,
	}
}

func (m *mockUserRepository) GetByID(companyID, id int64) (*user.User, error) {
	u, exists := m.users[id]
	if !exists || u.CompanyID != companyID {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) ListByCompany(companyID int64) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		if u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) EmailExists(email string) (bool, error) {
	return m.emails[email], nil
}

func (m *mockUserRepository) Create(u *user.User, passwordHash string) error {
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	copied := *u
	m.users[u.ID] = &copied
	m.emails[u.Email] = true
	return nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) CountAdmins(companyID int64) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.CompanyID == companyID && u.Role == approval.RoleAdmin {
			count++
		}
	}
	return count, nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, logger)
	})

	createUser := func(email, role string, managerID *int64) *user.User {
		u, err := service.CreateUser(1, user.CreateUserDTO{
			Email:     email,
			Password:  "password123",
			Name:      "Test User",
			Role:      role,
			ManagerID: managerID,
		})
		Expect(err).ToNot(HaveOccurred())
		return u
	}

	Describe("CreateUser", func() {
		It("should create a member in the admin's company", func() {
			u := createUser("evan@acme.test", "employee", nil)

			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.CompanyID).To(Equal(int64(1)))
			Expect(u.Role).To(Equal(approval.RoleEmployee))
		})

		It("should reject a duplicate email", func() {
			createUser("evan@acme.test", "employee", nil)

			_, err := service.CreateUser(1, user.CreateUserDTO{
				Email:    "evan@acme.test",
				Password: "password123",
				Name:     "Duplicate",
				Role:     "employee",
			})

			Expect(err).To(MatchError(user.ErrEmailTaken))
		})

		It("should reject a short password", func() {
			_, err := service.CreateUser(1, user.CreateUserDTO{
				Email:    "short@acme.test",
				Password: "abc",
				Name:     "Shorty",
				Role:     "employee",
			})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("password"))
		})

		It("should accept a manager assignment to a manager", func() {
			manager := createUser("mila@acme.test", "manager", nil)

			u := createUser("evan@acme.test", "employee", &manager.ID)

			Expect(u.ManagerID).ToNot(BeNil())
			Expect(*u.ManagerID).To(Equal(manager.ID))
		})

		It("should refuse an employee as a manager", func() {
			employee := createUser("evan@acme.test", "employee", nil)

			_, err := service.CreateUser(1, user.CreateUserDTO{
				Email:     "other@acme.test",
				Password:  "password123",
				Name:      "Other",
				Role:      "employee",
				ManagerID: &employee.ID,
			})

			Expect(err).To(MatchError(user.ErrBadManager))
		})
	})

	Describe("UpdateUser", func() {
		It("should change a member's role", func() {
			admin := createUser("ada@acme.test", "admin", nil)
			employee := createUser("evan@acme.test", "employee", nil)

			role := "manager"
			updated, err := service.UpdateUser(1, employee.ID, admin.ID, user.UpdateUserDTO{Role: &role})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Role).To(Equal(approval.RoleManager))
		})

		It("should refuse an admin demoting themselves", func() {
			admin := createUser("ada@acme.test", "admin", nil)

			role := "employee"
			_, err := service.UpdateUser(1, admin.ID, admin.ID, user.UpdateUserDTO{Role: &role})

			Expect(err).To(MatchError(user.ErrSelfDemotion))
		})

		It("should keep the last admin in place", func() {
			admin := createUser("ada@acme.test", "admin", nil)
			other := createUser("boss@acme.test", "admin", nil)

			// Demoting one of two admins is fine
			role := "manager"
			_, err := service.UpdateUser(1, other.ID, admin.ID, user.UpdateUserDTO{Role: &role})
			Expect(err).ToNot(HaveOccurred())

			// Demoting the only remaining admin is not; use another actor so
			// the self-demotion guard does not trigger first.
			_, err = service.UpdateUser(1, admin.ID, other.ID, user.UpdateUserDTO{Role: &role})
			Expect(err).To(MatchError(user.ErrLastAdmin))
		})

		It("should refuse a user managing themselves", func() {
			employee := createUser("evan@acme.test", "employee", nil)
			admin := createUser("ada@acme.test", "admin", nil)

			_, err := service.UpdateUser(1, employee.ID, admin.ID, user.UpdateUserDTO{ManagerID: &employee.ID})

			Expect(err).To(MatchError(user.ErrBadManager))
		})
	})

	Describe("ListUsers", func() {
		It("should only list the requested company", func() {
			createUser("one@acme.test", "employee", nil)
			createUser("two@acme.test", "manager", nil)

			users, err := service.ListUsers(1)
			Expect(err).ToNot(HaveOccurred())
			Expect(users).To(HaveLen(2))

			none, err := service.ListUsers(2)
			Expect(err).ToNot(HaveOccurred())
			Expect(none).To(BeEmpty())
		})
	})
})
