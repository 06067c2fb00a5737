package backend

// Backend endpoint paths. The trailing slashes are significant: the remote
// backend redirects slashless paths and drops the Authorization header on
// the hop, so every path keeps them.
const (
	pathCategories    = "/categories/"
	pathSubcategories = "/subcategories/"
	pathProducts      = "/products/"
	pathCart          = "/cart/"
	pathCartItems     = "/cart-items/"
	pathOrders        = "/orders/"
	pathReviews       = "/reviews/"
	pathNotices       = "/notices/"
	pathRole          = "/role/"
	pathProfile       = "/profile/"
	pathSendEmail     = "/send-email/"
	pathAdminOrders   = "/admin/orders/"
)
