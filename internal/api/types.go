// ABOUTME: Domain types shared by the resource clients
// ABOUTME: Mirrors the marketplace backend's JSON payloads

package api

// Role and status strings used by the backend.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"

	UserStatusActive = "ACTIVE"
	UserStatusBanned = "BANNED"

	PostStatusPending  = "PENDING"
	PostStatusApproved = "APPROVED"
	PostStatusRejected = "REJECTED"

	WithdrawalStatusPending  = "PENDING"
	WithdrawalStatusApproved = "APPROVED"
	WithdrawalStatusRejected = "REJECTED"
)

// User is the profile record attached to a session.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Post is a marketplace listing for a vehicle or battery.
type Post struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	BrandID     int64    `json:"brandId"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	SellerID    int64    `json:"sellerId"`
	SellerName  string   `json:"sellerName"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	CreatedAt   string   `json:"createdAt"`
}

// PostPage is one page of listings.
type PostPage struct {
	Items      []Post `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalItems int    `json:"totalItems"`
}

// CartItem is one entry in the shopping cart.
type CartItem struct {
	PostID   int64  `json:"postId"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Cart is the visitor's current shopping cart.
type Cart struct {
	Items []CartItem `json:"items"`
	Total int64      `json:"total"`
}

// Favorite links a user to a saved listing.
type Favorite struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"postId"`
	Post   *Post `json:"post,omitempty"`
}

// Wallet is the user's marketplace balance account.
type Wallet struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"userId"`
	Balance int64 `json:"balance"`
}

// Transaction is one wallet ledger entry.
type Transaction struct {
	ID          int64  `json:"id"`
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// WithdrawalRequest is a pending or settled withdrawal.
type WithdrawalRequest struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Amount      int64  `json:"amount"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// Brand is a vehicle or battery manufacturer.
type Brand struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Auction is a simple time-boxed auction attached to a listing.
type Auction struct {
	ID            int64  `json:"id"`
	PostID        int64  `json:"postId"`
	StartingPrice int64  `json:"startingPrice"`
	CurrentBid    int64  `json:"currentBid"`
	EndsAt        string `json:"endsAt"`
	Status        string `json:"status"`
}
