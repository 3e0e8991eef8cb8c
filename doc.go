/*
 * doc.go, part of ringpucker.
 *
 * Copyright 2026 Mauricio Poblete <mpoblete{at}gmailDOTcom>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package pucker measures ring puckering in molecular-dynamics geometries.

The core is the Cremer-Pople treatment of ring puckering (Cremer and Pople,
J Am Chem Soc, 97, 1354, 1975): from the positions of the ring atoms, in
cyclic bond order, it builds the mean-plane displacements and the per-mode
puckering amplitudes and phases. For 6-membered rings the two puckering
degrees of freedom map onto a sphere (total amplitude Q, polar angle theta,
azimuthal angle phi), and the position on that sphere assigns one of the
named conformation classes: chair, half-chair, envelope, boat, twist-boat,
or planar for vanishing amplitude.

Analyze runs that measurement over a whole dataset of geometries, isolating
per-geometry failures, and Table persists the rows in a commented text
format. Trajectory loading lives in traj/xyz, geometry clustering in
cluster, and plotting in puckerplot; the ringpucker command drives all of it
from a YAML configuration file.
*/
package pucker
