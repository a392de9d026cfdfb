package i18n

var messagesEN = map[string]string{
	"error.bad_request":              "Invalid request",
	"error.unauthorized":             "Please log in first",
	"error.forbidden":                "Access denied",
	"error.not_found":                "Not found",
	"error.internal":                 "Something went wrong, please try again later",
	"error.rate_limited":             "Too many attempts, please retry in %d seconds",
	"error.rate_limit_unavailable":   "Rate limiter unavailable",
	"error.session_unavailable":      "Session storage unavailable",
	"error.auth_header_missing":      "Authorization header is missing",
	"error.auth_header_invalid":      "Authorization header is invalid",
	"error.token_invalid":            "Token is invalid or expired",
	"error.token_revoked":            "Token has been revoked, please log in again",
	"error.user_disabled":            "This account is disabled",
	"error.user_not_found":           "User not found",
	"error.product_not_found":        "Product not found",
	"error.category_not_found":       "Category not found",
	"error.order_not_found":          "Order not found",
	"error.invalid_quantity":         "Quantity must be a positive number",
	"error.invalid_product_id":       "Invalid product id",
	"error.invalid_order_id":         "Invalid order id",
	"error.cart_load_failed":         "Could not read your cart",
	"error.cart_empty":               "Your cart is empty",
	"error.checkout_invalid":         "Please correct the errors below",
	"error.product_unavailable":      "Product %s is no longer available",
	"error.insufficient_stock":       "Not enough stock for %s: available %d",
	"error.order_create_failed":      "Error creating order, please try again",
	"error.order_user_required":      "Please log in to place an order",
	"error.username_invalid":         "Username may contain only letters, digits and @/./+/-/_ (3-150 characters)",
	"error.username_exists":          "A user with that username already exists",
	"error.email_invalid":            "Enter a valid email address",
	"error.email_exists":             "A user with that email already exists",
	"error.password_mismatch":        "The two password fields didn't match",
	"error.password_old_invalid":     "Your old password was entered incorrectly",
	"error.password_policy":          "Password does not meet the policy",
	"error.password_policy_length":   "Password must be at least %d characters",
	"error.password_policy_upper":    "Password must contain an uppercase letter",
	"error.password_policy_lower":    "Password must contain a lowercase letter",
	"error.password_policy_number":   "Password must contain a digit",
	"error.password_policy_special":  "Password must contain a special character",
	"error.invalid_credentials":      "Invalid username or password",
	"field.required":                 "This field is required",
	"field.email":                    "Enter a valid email address",
	"field.max":                      "Ensure this value has at most %s characters",
	"field.oneof":                    "Select a valid choice",
	"field.invalid":                  "Enter a valid value",
	"cart.added":                     "%s added to cart",
	"cart.stock_available":           "Available stock: %d. Cannot add %d items.",
	"cart.stock_max_available":       "Cannot add more. Maximum available: %d",
	"cart.removed":                   "%s removed from cart",
	"cart.item_removed":              "Item removed from cart",
	"cart.updated":                   "Cart updated",
	"cart.cleared":                   "Cart cleared",
	"cart.saved":                     "Cart saved with %d items",
	"cart.empty":                     "Cart is empty",
	"cart.transferred":               "Your saved cart has been restored",
	"checkout.login_required":        "Please log in to complete checkout",
	"order.created":                  "Order #%s created successfully",
	"auth.registered":                "Registration successful",
	"auth.logged_in":                 "Welcome back, %s",
	"auth.logged_out":                "You have been logged out",
	"auth.password_changed":          "Password changed, please log in again",
	"auth.profile_updated":           "Profile updated",
	"payment.debit":                  "Debit card",
	"payment.credit":                 "Credit card",
	"payment.cash":                   "Cash on delivery",
	"payment.paypal":                 "PayPal",
	"payment.wallet":                 "Wallet",
	"email.order_placed.subject":     "Hop & Barley: order %s received",
	"email.order_placed.greeting":    "Hello, %s!",
	"email.order_placed.intro":       "Thank you for your order. We have received it and will contact you soon.",
	"email.order_placed.total":       "Total: %s",
	"email.order_placed.line":        "%s x %d = %s",
	"email.order_placed.footer":      "Hop & Barley homebrew supply",
}
