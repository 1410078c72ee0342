package domain

// Permiso is a stable capability identifier. Authorization is a single
// check at the route boundary: the actor's rol must carry the permiso
// declared for the endpoint. Handlers and services never re-check.
type Permiso string

const (
	PermisoVerProductos     Permiso = "VER_PRODUCTOS"
	PermisoCrearProducto    Permiso = "CREAR_PRODUCTO"
	PermisoEditarProducto   Permiso = "EDITAR_PRODUCTO"
	PermisoEliminarProducto Permiso = "ELIMINAR_PRODUCTO"
	PermisoAjustarStock     Permiso = "AJUSTAR_STOCK"

	PermisoCrearVenta  Permiso = "CREAR_VENTA"
	PermisoVerVentas   Permiso = "VER_VENTAS"
	PermisoAnularVenta Permiso = "ANULAR_VENTA"

	PermisoGestionarCaja   Permiso = "GESTIONAR_CAJA"
	PermisoVerReportesCaja Permiso = "VER_REPORTES_CAJA"

	PermisoVerClientes       Permiso = "VER_CLIENTES"
	PermisoGestionarClientes Permiso = "GESTIONAR_CLIENTES"

	PermisoVerProveedores       Permiso = "VER_PROVEEDORES"
	PermisoGestionarProveedores Permiso = "GESTIONAR_PROVEEDORES"

	PermisoVerCompras          Permiso = "VER_COMPRAS"
	PermisoCrearOrdenCompra    Permiso = "CREAR_ORDEN_COMPRA"
	PermisoActualizarOrden     Permiso = "ACTUALIZAR_ORDEN_COMPRA"
	PermisoPagarOrdenCompra    Permiso = "PAGAR_ORDEN_COMPRA"

	PermisoVerReportes            Permiso = "VER_REPORTES"
	PermisoVerReportesFinancieros Permiso = "VER_REPORTES_FINANCIEROS"

	PermisoGestionarUsuarios Permiso = "GESTIONAR_USUARIOS"
)

// Roles del sistema.
const (
	RolAdministrador = "administrador"
	RolSupervisor    = "supervisor"
	RolCajero        = "cajero"
)

var permisosCajero = []Permiso{
	PermisoVerProductos,
	PermisoCrearVenta,
	PermisoVerVentas,
	PermisoGestionarCaja,
	PermisoVerClientes,
}

var permisosSupervisor = append([]Permiso{
	PermisoEditarProducto,
	PermisoAjustarStock,
	PermisoAnularVenta,
	PermisoVerReportesCaja,
	PermisoGestionarClientes,
	PermisoVerProveedores,
	PermisoVerCompras,
	PermisoVerReportes,
}, permisosCajero...)

var permisosAdministrador = append([]Permiso{
	PermisoCrearProducto,
	PermisoEliminarProducto,
	PermisoGestionarProveedores,
	PermisoCrearOrdenCompra,
	PermisoActualizarOrden,
	PermisoPagarOrdenCompra,
	PermisoVerReportesFinancieros,
	PermisoGestionarUsuarios,
}, permisosSupervisor...)

var permisosPorRol = map[string][]Permiso{
	RolCajero:        permisosCajero,
	RolSupervisor:    permisosSupervisor,
	RolAdministrador: permisosAdministrador,
}

// RolTienePermiso reports whether rol carries the given capability.
// Unknown roles have no permissions.
func RolTienePermiso(rol string, p Permiso) bool {
	for _, tiene := range permisosPorRol[rol] {
		if tiene == p {
			return true
		}
	}
	return false
}

// PermisosDeRol returns the capability set for a rol (for the login response,
// so the frontend can filter navigation without re-encoding the matrix).
func PermisosDeRol(rol string) []Permiso {
	return permisosPorRol[rol]
}
