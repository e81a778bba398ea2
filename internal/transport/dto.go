package transport

type SignInRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type InitiateAdminRequest struct {
	Name     string `json:"name"     form:"name"`
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"        form:"name"`
	Description string `json:"description" form:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        form:"name"`
	Description *string `json:"description" form:"description"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"        form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price"       form:"price"`
	Stock       uint    `json:"stock"       form:"stock"`
	CategoryID  string  `json:"category_id" form:"category_id"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"        form:"name"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price"       form:"price"`
	Stock       *uint    `json:"stock"       form:"stock"`
	CategoryID  *string  `json:"category_id" form:"category_id"`
}

type CreateBankRequest struct {
	BankName      string `json:"bank_name"      form:"bank_name"`
	AccountName   string `json:"account_name"   form:"account_name"`
	AccountNumber string `json:"account_number" form:"account_number"`
}

type UpdateBankRequest struct {
	BankName      *string `json:"bank_name"      form:"bank_name"`
	AccountName   *string `json:"account_name"   form:"account_name"`
	AccountNumber *string `json:"account_number" form:"account_number"`
}

// CreateTransactionRequest arrives as a multipart form together with the
// payment proof file; PurchasedItems is a JSON-encoded array in a text
// field, the way the storefront submits it.
type CreateTransactionRequest struct {
	CustomerName    string  `json:"customer_name"    form:"customer_name"`
	CustomerContact string  `json:"customer_contact" form:"customer_contact"`
	CustomerAddress string  `json:"customer_address" form:"customer_address"`
	TotalPayment    float64 `json:"total_payment"    form:"total_payment"`
	PurchasedItems  string  `json:"purchased_items"  form:"purchased_items"`
}

type PurchasedItem struct {
	ProductID string `json:"productId"`
	Qty       uint   `json:"qty"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" form:"status"`
}
