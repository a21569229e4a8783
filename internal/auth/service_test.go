package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockUserRepository struct {
	usersByEmail  map[string]*auth.User
	usersByID     map[int64]*auth.User
	passwords     map[string]string
	companies     map[int64]string
	nextUserID    int64
	nextCompanyID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail:  make(map[string]*auth.User),
		usersByID:     make(map[int64]*auth.User),
		passwords:     make(map[string]string),
		companies:     make(map[int64]string),
		nextUserID:    1,
		nextCompanyID: 1,
	}
}

func (m *mockUserRepository) GetPasswordForEmail(email string) (string, int64, error) {
	user, exists := m.usersByEmail[email]
	if !exists {
		return "", 0, auth.ErrUserNotFound
	}
	return m.passwords[email], user.ID, nil
}

func (m *mockUserRepository) GetUserByID(userID int64) (*auth.User, error) {
	user, exists := m.usersByID[userID]
	if !exists {
		return nil, auth.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) EmailExists(email string) (bool, error) {
	_, exists := m.usersByEmail[email]
	return exists, nil
}

func (m *mockUserRepository) CreateUser(dto auth.RegisterDTO, passwordHash string, companyID int64) (*auth.User, error) {
	user := &auth.User{
		ID:        m.nextUserID,
		Email:     dto.Email,
		Name:      dto.Name,
		Role:      approval.Role(dto.Role),
		CompanyID: companyID,
	}
	m.nextUserID++
	m.usersByEmail[dto.Email] = user
	m.usersByID[user.ID] = user
	m.passwords[dto.Email] = passwordHash
	return user, nil
}

func (m *mockUserRepository) CreateCompany(name, currency string, thresholdCents int64) (int64, error) {
	id := m.nextCompanyID
	m.nextCompanyID++
	m.companies[id] = name
	return id, nil
}

func (m *mockUserRepository) DefaultCompanyID() (int64, error) {
	for id := range m.companies {
		return id, nil
	}
	return 0, auth.ErrNoCompany
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockUserRepository
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen := auth.NewJWTTokenGenerator(
			"test-access-secret-must-be-long-enough!!",
			"test-refresh-secret-must-be-long-enough!",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	registerAdmin := func() *auth.RegisterResponse {
		resp, err := service.Register(auth.RegisterDTO{
			Email:                  "admin@acme.test",
			Password:               "password",
			Name:                   "Ada Admin",
			Role:                   "admin",
			CompanyName:            "Acme Corp",
			Currency:               "USD",
			ApprovalThresholdCents: 100000,
		})
		Expect(err).ToNot(HaveOccurred())
		return resp
	}

	Describe("Register", func() {
		Context("when an admin registers with a company name", func() {
			It("should bootstrap the company and return tokens", func() {
				resp := registerAdmin()

				Expect(resp.User.ID).To(BeNumerically(">", 0))
				Expect(resp.User.Role).To(Equal(approval.RoleAdmin))
				Expect(resp.User.CompanyID).To(BeNumerically(">", 0))
				Expect(resp.Tokens.AccessToken).ToNot(BeEmpty())
				Expect(resp.Tokens.RefreshToken).ToNot(BeEmpty())
				Expect(mockRepo.companies).To(HaveLen(1))
			})
		})

		Context("when an employee registers after the company exists", func() {
			It("should attach them to the existing company", func() {
				admin := registerAdmin()

				resp, err := service.Register(auth.RegisterDTO{
					Email:    "evan@acme.test",
					Password: "password",
					Name:     "Evan Employee",
					Role:     "employee",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(resp.User.CompanyID).To(Equal(admin.User.CompanyID))
			})
		})

		Context("when no company exists yet", func() {
			It("should refuse a non-admin registration", func() {
				_, err := service.Register(auth.RegisterDTO{
					Email:    "evan@acme.test",
					Password: "password",
					Name:     "Evan Employee",
					Role:     "employee",
				})

				Expect(err).To(MatchError(auth.ErrNoCompany))
			})
		})

		Context("when the email is already taken", func() {
			It("should return the email-taken error", func() {
				registerAdmin()

				_, err := service.Register(auth.RegisterDTO{
					Email:    "admin@acme.test",
					Password: "password",
					Name:     "Impostor",
					Role:     "employee",
				})

				Expect(err).To(MatchError(auth.ErrEmailTaken))
			})
		})

		Context("when validation fails", func() {
			It("should reject a short password", func() {
				_, err := service.Register(auth.RegisterDTO{
					Email:    "short@acme.test",
					Password: "abc",
					Name:     "Shorty",
					Role:     "employee",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("password"))
			})

			It("should reject an unknown role", func() {
				_, err := service.Register(auth.RegisterDTO{
					Email:    "role@acme.test",
					Password: "password",
					Name:     "Roleless",
					Role:     "superuser",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("role"))
			})
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			registerAdmin()
		})

		It("should return tokens for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "admin@acme.test",
				Password: "password",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "admin@acme.test",
				Password: "wrong-password",
			})

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "ghost@acme.test",
				Password: "password",
			})

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})
	})

	Describe("Token validation", func() {
		It("should round-trip claims through an access token", func() {
			resp := registerAdmin()

			claims, err := service.ValidateAccessToken(resp.Tokens.AccessToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal(resp.User.ID))
			Expect(claims.Email).To(Equal("admin@acme.test"))
			Expect(claims.Role).To(Equal("admin"))
			Expect(claims.CompanyID).To(Equal(resp.User.CompanyID))
		})

		It("should reject garbage tokens", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh pair from a refresh token", func() {
			resp := registerAdmin()

			tokens, err := service.RefreshTokens(resp.Tokens.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("should pick up a role change at refresh time", func() {
			resp := registerAdmin()
			mockRepo.usersByID[resp.User.ID].Role = approval.RoleManager

			tokens, err := service.RefreshTokens(resp.Tokens.RefreshToken)
			Expect(err).ToNot(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Role).To(Equal("manager"))
		})
	})
})
