// Package formats writes built surface meshes to interchange formats
// (Wavefront OBJ and binary STL) and reads STL back for verification.
package formats
