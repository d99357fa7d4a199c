package policy

import "storefront/internal/models"

// API actions.
const (
	UserCreate               = "user.create"
	UserList                 = "user.list"
	UserRetrieve             = "user.retrieve"
	UserUpdate               = "user.update"
	UserDestroy              = "user.destroy"
	UserMe                   = "user.me"
	UserChangePassword       = "user.change_password"
	UserChangeEmail          = "user.change_email"
	UserResetPassword        = "user.reset_password"
	UserResetPasswordConfirm = "user.reset_password_confirm"

	GroupList      = "group.list"
	GroupRetrieve  = "group.retrieve"
	GroupCreate    = "group.create"
	GroupUpdate    = "group.update"
	GroupDestroy   = "group.destroy"
	PermissionList = "permission.list"

	CategoryList     = "category.list"
	CategoryRetrieve = "category.retrieve"
	CategoryCreate   = "category.create"
	CategoryUpdate   = "category.update"
	CategoryDestroy  = "category.destroy"

	ProductList     = "product.list"
	ProductRetrieve = "product.retrieve"
	ProductCreate   = "product.create"
	ProductUpdate   = "product.update"
	ProductDestroy  = "product.destroy"

	CommentList    = "comment.list"
	CommentCreate  = "comment.create"
	CommentDestroy = "comment.destroy"

	CartCreate     = "cart.create"
	CartRetrieve   = "cart.retrieve"
	CartDestroy    = "cart.destroy"
	CartItemAdd    = "cart.item_add"
	CartItemUpdate = "cart.item_update"
	CartItemRemove = "cart.item_remove"

	AddressList     = "address.list"
	AddressCreate   = "address.create"
	AddressRetrieve = "address.retrieve"
	AddressUpdate   = "address.update"
	AddressDestroy  = "address.destroy"
)

func preds(p ...Predicate) []Predicate { return p }

// Default returns the policy table used by the API.
func Default() *Policy {
	productManagers := GroupMember(models.ProductManagementGroup)

	return New().
		Register(preds(AnonymousOnly), UserCreate).
		Register(preds(SuperuserOnly), UserList, UserRetrieve, UserUpdate, UserDestroy).
		Register(preds(AuthenticatedOnly), UserMe, UserChangePassword, UserChangeEmail).
		Register(preds(AllowAny), UserResetPassword, UserResetPasswordConfirm).
		Register(preds(SuperuserOnly), GroupList, GroupRetrieve, GroupCreate, GroupUpdate, GroupDestroy, PermissionList).
		Register(preds(AllowAny), CategoryList, CategoryRetrieve, ProductList, ProductRetrieve, CommentList).
		Register(preds(productManagers), CategoryCreate, CategoryUpdate, CategoryDestroy).
		Register(preds(productManagers), ProductCreate, ProductUpdate, ProductDestroy).
		Register(preds(AuthenticatedOnly), CommentCreate).
		Register(preds(SelfOrSuperuser), CommentDestroy).
		Register(preds(AllowAny), CartCreate, CartRetrieve, CartDestroy, CartItemAdd, CartItemUpdate, CartItemRemove).
		Register(preds(AuthenticatedOnly), AddressList, AddressCreate).
		Register(preds(SelfOrSuperuser), AddressRetrieve, AddressUpdate, AddressDestroy)
}
