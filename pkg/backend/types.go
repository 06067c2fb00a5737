package backend

import "encoding/json"

// Category is a top-level catalog bucket. Identity is the id; the slug only
// matters for URL matching.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
}

// Subcategory belongs to exactly one category via the Category field.
type Subcategory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// Product is a catalog jewelry item. Price and Weight arrive as decimal
// strings from some deployments and as numbers from others, so they are
// kept as json.Number and coerced where math is needed.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       json.Number `json:"price"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	ImageURL    string      `json:"image_url,omitempty"`
	Weight      json.Number `json:"weight,omitempty"`
	Slug        string      `json:"slug"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	IsActive    bool        `json:"is_active"`
}

// ProductInput is the admin-side create/patch payload.
type ProductInput struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Price       json.Number `json:"price,omitempty"`
	Weight      json.Number `json:"weight,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	Category    string      `json:"category,omitempty"`
	Subcategory string      `json:"subcategory,omitempty"`
	IsActive    *bool       `json:"is_active,omitempty"`
}

// JewelryRef is the denormalized product snapshot embedded in cart and
// order lines.
type JewelryRef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	ImageURL string      `json:"image_url"`
}

type CartItem struct {
	ID          string     `json:"id"`
	Quantity    int        `json:"quantity"`
	JewelryItem JewelryRef `json:"jewelry_item"`
}

type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"items"`
}

type OrderItem struct {
	ID          string     `json:"id"`
	Quantity    int        `json:"quantity"`
	JewelryItem JewelryRef `json:"jewelry_item"`
}

// Order statuses as the backend reports them.
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID          string      `json:"id"`
	User        string      `json:"user,omitempty"`
	TotalAmount json.Number `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Items       []OrderItem `json:"items"`
}

type Review struct {
	ID          string `json:"id"`
	User        string `json:"user"`
	JewelryItem string `json:"jewelry_item"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   string `json:"created_at"`
}

// ReviewInput is the create payload. The user field is echoed for parity
// with the original client but the backend assigns the author itself.
type ReviewInput struct {
	User        string `json:"user,omitempty"`
	JewelryItem string `json:"jewelry_item"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// Notice types the backend accepts.
const (
	NoticeTypeOffer       = "offer"
	NoticeTypeNotice      = "notice"
	NoticeTypePriceChange = "price change"
)

type Notice struct {
	ID         string `json:"id"`
	Message    string `json:"message"`
	NoticeType string `json:"notice_type"`
	CreatedAt  string `json:"created_at"`
}

type NoticeInput struct {
	Message    string `json:"message"`
	NoticeType string `json:"notice_type"`
}

type Profile struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

type EmailMessage struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}
